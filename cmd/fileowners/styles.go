package main

import "github.com/charmbracelet/lipgloss"

// Console colors, ANSI 256 palette. Nothing is colored when stdout is not a
// terminal.
var (
	colorSuccess = lipgloss.Color("42")
	colorWarning = lipgloss.Color("214")
	colorDanger  = lipgloss.Color("196")
	colorMuted   = lipgloss.Color("245")
)

var (
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	successStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	warningStyle = lipgloss.NewStyle().Foreground(colorWarning)
	errorStyle   = lipgloss.NewStyle().Foreground(colorDanger).Bold(true)
)
