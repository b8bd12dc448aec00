package tui

import "github.com/rgehrsitz/earlypension/internal/tui/tuistyles"

// Re-export styles from tuistyles so components and the model share one palette
var (
	TitleStyle         = tuistyles.TitleStyle
	SubtitleStyle      = tuistyles.SubtitleStyle
	BorderStyle        = tuistyles.BorderStyle
	ActiveBorderStyle  = tuistyles.ActiveBorderStyle
	ErrorStyle         = tuistyles.ErrorStyle
	InfoStyle          = tuistyles.InfoStyle
	TableHeaderStyle   = tuistyles.TableHeaderStyle
	TableCellStyle     = tuistyles.TableCellStyle
	TableCaughtUpStyle = tuistyles.TableCaughtUpStyle
	TableSelectedStyle = tuistyles.TableSelectedStyle
)
