// Package config provides configuration management for pkgmeta.
//
// # Configuration File
//
// pkgmeta looks for pkgmeta.yaml in the current directory, then in
// <xdg config home>/pkgmeta. Every key can also be set through a
// PKGMETA_-prefixed environment variable (PKGMETA_PACKAGES_DIR, ...).
//
//	version: 1
//	root: .
//	packages_dir: packages
//	output: metadata.toml
//	metadata_file: metadata.toml
//	manifest_file: package.json
//	source_branch: master
//	concurrency: 0   # 0 means GOMAXPROCS
//
// # Loading Configuration
//
//	config.Init()
//	cfg, err := config.Load("")
//	if err != nil {
//	    return err
//	}
//
// Load validates the result; use [Validate] directly to collect every
// problem at once.
package config
