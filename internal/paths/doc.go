// Package paths resolves the filesystem locations pkgmeta works with: the
// user-level configuration directory and the repository layout (packages
// directory, per-package files and the generated output).
//
// # XDG Base Directory Compliance
//
// The package wraps github.com/adrg/xdg for cross-platform XDG Base Directory
// Specification compliance. On Linux and macOS, paths follow XDG conventions
// (~/.config, ~/.local/share, ~/.cache).
//
// # Repository Layout
//
//	<root>/
//	├── metadata.toml          # generated output
//	└── packages/
//	    └── postcss-foo/
//	        ├── metadata.toml  # optional per-package metadata
//	        └── package.json   # manifest
package paths
