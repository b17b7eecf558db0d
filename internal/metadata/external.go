package metadata

// External returns the curated records for packages maintained outside the
// monorepo. Each call returns fresh copies.
func External() map[string]*Record {
	autoprefixerSafe := 2.0 // changes semantics

	return map[string]*Record{
		"autoprefixer": {
			Key:              "autoprefixer",
			ShortName:        "autoprefixer",
			ShortDescription: "Removes outdated vendor prefixes",
			LongDescription:  "Removes unnecessary prefixes based on the `browsers` option. Note that *by default*, **it will not add new prefixes** to the CSS file.",
			InputExample: `.box {
    -moz-border-radius: 10px;
    border-radius: 10px;
    display: flex;
}
`,
			OutputExample: `.box {
    border-radius: 10px;
    display: flex;
}
`,
			Source: "https://github.com/postcss/autoprefixer",
			Safe:   &autoprefixerSafe,
		},
		"postcss-calc": {
			Key:              "postcss-calc",
			ShortName:        "calc",
			ShortDescription: "Reduces CSS calc expressions",
			LongDescription:  "Reduces CSS `calc` expressions whereever possible, ensuring both browser compatibility and compression.",
			InputExample: `.box {
    width: calc(2 * 100px);
}
`,
			OutputExample: `.box {
    width: 200px;
}
`,
			Source: "https://github.com/postcss/postcss-calc",
		},
	}
}
