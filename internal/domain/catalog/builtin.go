package catalog

import "github.com/nounsos/desktop/backend/internal/shared/types"

var standardMargins = types.Margins{Top: 16, Right: 16, Bottom: 16, Left: 16}

func remSize(w, h float64) types.Size {
	return types.Size{Width: types.Rem(w), Height: types.Rem(h)}
}

func remSizePtr(w, h float64) *types.Size {
	s := remSize(w, h)
	return &s
}

// builtinApps is the stock application table of the desktop
func builtinApps() []types.AppConfig {
	return []types.AppConfig{
		{
			ID:          "auction",
			Title:       "Noun Auction",
			Icon:        "auction",
			Kind:        types.KindWindow,
			DefaultSize: remSize(42, 34),
			MinSize:     remSize(30, 24),
			MaxSize:     remSizePtr(80, 60),
			Anchor:      types.AnchorCenter,
			Margins:     standardMargins,
			CanResize:   true,
		},
		{
			ID:          "probe",
			Title:       "Probe",
			Icon:        "probe",
			Kind:        types.KindWindow,
			DefaultSize: remSize(60, 40),
			MinSize:     remSize(40, 28),
			Anchor:      types.AnchorTopLeft,
			Margins:     standardMargins,
			CanResize:   true,
		},
		{
			ID:          "proposals",
			Title:       "Proposals",
			Icon:        "proposals",
			Kind:        types.KindWindow,
			DefaultSize: remSize(48, 38),
			MinSize:     remSize(32, 24),
			Anchor:      types.AnchorCenter,
			Margins:     standardMargins,
			CanResize:   true,
		},
		{
			ID:          "proposal",
			Title:       "Proposal",
			Icon:        "proposal",
			Kind:        types.KindWindow,
			DefaultSize: remSize(44, 40),
			MinSize:     remSize(30, 26),
			Anchor:      types.AnchorCenter,
			Margins:     standardMargins,
			CanResize:   true,
		},
		{
			ID:          "noun",
			Title:       "Noun",
			Icon:        "noun",
			Kind:        types.KindWindow,
			DefaultSize: remSize(28, 34),
			MinSize:     remSize(28, 34),
			Anchor:      types.AnchorCenter,
			Margins:     standardMargins,
		},
		{
			ID:          "treasury",
			Title:       "Treasury",
			Icon:        "treasury",
			Kind:        types.KindWindow,
			DefaultSize: remSize(36, 28),
			MinSize:     remSize(28, 20),
			Anchor:      types.AnchorTopRight,
			Margins:     standardMargins,
			CanResize:   true,
		},
		{
			ID:          "settings",
			Title:       "Settings",
			Icon:        "settings",
			Kind:        types.KindWindow,
			DefaultSize: remSize(32, 28),
			MinSize:     remSize(32, 28),
			Anchor:      types.AnchorCenter,
			Margins:     standardMargins,
		},
		{
			ID:          "about",
			Title:       "About NounsOS",
			Icon:        "about",
			Kind:        types.KindWindow,
			DefaultSize: remSize(24, 18),
			MinSize:     remSize(24, 18),
			Anchor:      types.AnchorCenter,
			Margins:     standardMargins,
		},
		{
			ID:          "wallet",
			Title:       "Wallet",
			Icon:        "wallet",
			Kind:        types.KindMiniApp,
			DefaultSize: remSize(20, 26),
			MinSize:     remSize(20, 26),
			Anchor:      types.AnchorBottomRight,
			Margins:     types.Margins{Top: 8, Right: 8, Bottom: 8, Left: 8},
		},
		{
			ID:          "clock",
			Title:       "Clock",
			Icon:        "clock",
			Kind:        types.KindMiniApp,
			DefaultSize: remSize(12, 6),
			MinSize:     remSize(12, 6),
			Anchor:      types.AnchorTopRight,
			Margins:     types.Margins{Top: 8, Right: 8, Bottom: 8, Left: 8},
			Pinned:      true,
		},
		{
			ID:          "sound",
			Title:       "Sound",
			Icon:        "sound",
			Kind:        types.KindMiniApp,
			DefaultSize: remSize(16, 10),
			MinSize:     remSize(16, 10),
			Anchor:      types.AnchorBottomRight,
			Margins:     types.Margins{Top: 8, Right: 8, Bottom: 8, Left: 8},
		},
	}
}
