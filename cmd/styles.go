package cmd

import "github.com/khrees2412/jobtrack/internal/view"

var (
	titleStyle = view.TitleStyle
	labelStyle = view.LabelStyle
	errorStyle = view.ErrorStyle
	hintStyle  = view.HintStyle
)
