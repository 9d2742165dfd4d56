package docs

import "embed"

// FS contains the long-form Markdown guide bundled with the drange binary.
//
//go:embed guide
var FS embed.FS
