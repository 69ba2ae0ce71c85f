// Package markdown splits content files into frontmatter and body and renders
// bodies into sanitized HTML. A "+++" prefix selects TOML frontmatter; every
// other file is read as a YAML "---" block, or as body only when no block is
// present.
package markdown
