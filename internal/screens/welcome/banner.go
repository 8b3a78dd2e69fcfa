package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/algolab/internal/ui/theme"
)

const bannerArt = ` █████╗ ██╗      ██████╗  ██████╗ ██╗      █████╗ ██████╗
██╔══██╗██║     ██╔════╝ ██╔═══██╗██║     ██╔══██╗██╔══██╗
███████║██║     ██║  ███╗██║   ██║██║     ███████║██████╔╝
██╔══██║██║     ██║   ██║██║   ██║██║     ██╔══██║██╔══██╗
██║  ██║███████╗╚██████╔╝╚██████╔╝███████╗██║  ██║██████╔╝
╚═╝  ╚═╝╚══════╝ ╚═════╝  ╚═════╝ ╚══════╝╚═╝  ╚═╝╚═════╝`

const bannerCompact = "A L G O L A B"

// bannerWidth is the display width of bannerArt.
const bannerWidth = 58

// RenderBanner returns the ALGOLAB banner styled in the primary color.
// Uses a compact fallback when width cannot fit the block letters.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
