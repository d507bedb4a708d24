package shell

import (
	"fmt"

	"github.com/termfolio/termfolio/internal/vfs"
)

// Welcome returns the locale-aware greeting shown on session start and
// after a logout reset.
func Welcome(loc vfs.Locale, host string) string {
	if loc == vfs.LocaleZH {
		return fmt.Sprintf(`欢迎来到 termfolio (%s)

这是一个交互式作品集。从 'ls' 开始，用 'cat' 阅读文件，
输入 'help' 查看完整命令列表。
`, host)
	}
	return fmt.Sprintf(`Welcome to termfolio (%s)

This is an interactive portfolio. Start with 'ls', read files with
'cat', and type 'help' for the full command list.
`, host)
}
