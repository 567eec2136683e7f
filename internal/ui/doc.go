// Package ui provides semantic text formatting for CLI output.
//
// The formatters cover the kinds of content tuatara prints and render
// appropriately for the terminal. When colors are available, content is
// colorized. When NO_COLOR is set or the terminal doesn't support colors,
// text-based decorations (backticks, quotes) are used instead.
//
// # Semantic Formatters
//
// Use the appropriate formatter for the content type:
//
//	ui.Code.Sprint("tuatara wordlist fetch")  // Commands to run next
//	ui.Path.Sprint("config.toml")             // File paths
//	ui.Info.Sprint("entropy:")                // Hints and report labels
//	ui.Highlight.Sprint("wifi")               // User values
//	ui.Muted.Sprint("clears after 45s")       // De-emphasized asides
//
// # Color Behavior
//
// Colors are disabled when:
//   - NO_COLOR environment variable is set (any value)
//   - Terminal doesn't support colors (TERM=dumb, not a TTY)
//
// When colors are disabled, formatters apply text decorations:
//   - Code: `backticks`
//   - Highlight: 'single quotes'
//   - Muted: (parentheses)
//   - Path, Info: no decoration (self-evident from context)
package ui
