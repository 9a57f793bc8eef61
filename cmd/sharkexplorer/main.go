package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lemonshark/sharkkit/cmd/sharkexplorer/logger"
)

var (
	version = "0.1.0"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Parse flags first (before positional args)
	args := os.Args[1:]
	debugMode := os.Getenv("SHARKEXPLORER_LOG") != ""

	// Extract --debug/-d flag
	filteredArgs := make([]string, 0, len(args))
	for _, arg := range args {
		if arg == "--debug" || arg == "-d" {
			debugMode = true
		} else {
			filteredArgs = append(filteredArgs, arg)
		}
	}

	// Initialize logger (must be before any logging calls)
	if err := logger.Init(logger.Options{
		Enabled: debugMode,
		Level:   slog.LevelDebug,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to init logging: %v\n", err)
	}

	if len(filteredArgs) < 1 {
		printUsage()
		os.Exit(1)
	}

	if filteredArgs[0] == "--help" || filteredArgs[0] == "-h" {
		printHelp()
		os.Exit(0)
	}

	if filteredArgs[0] == "--version" || filteredArgs[0] == "-v" {
		fmt.Printf("sharkexplorer %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built: %s\n", date)
		os.Exit(0)
	}

	imgPath := filteredArgs[0]
	logger.Info("starting sharkexplorer", "path", imgPath, "debug", debugMode)

	// Check if file exists
	if _, err := os.Stat(imgPath); err != nil {
		logger.Error("image file not found", "path", imgPath, "error", err)
		fmt.Fprintf(os.Stderr, "Error: image file not found: %s\n", imgPath)
		os.Exit(1)
	}

	// Create the TUI model
	m := NewModel(imgPath)

	// Create the Bubbletea program
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Enable mouse support
	)

	// Run the program
	finalModel, err := p.Run()
	if err != nil {
		logger.Error("TUI error", "error", err)
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}

	// Clean up resources
	if model, ok := finalModel.(Model); ok {
		if err := model.Close(); err != nil {
			// Log error but don't fail - cleanup is best effort
			logger.Warn("error closing resources", "error", err)
		}
	}

	logger.Info("sharkexplorer exited normally")
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: sharkexplorer [options] <image-file>\n")
	fmt.Fprintf(os.Stderr, "Try 'sharkexplorer --help' for more information.\n")
}

func printHelp() {
	fmt.Println("sharkexplorer - Interactive TUI for sharkkit volume images")
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("  sharkexplorer [options] <image-file>")
	fmt.Println()
	fmt.Println("DESCRIPTION:")
	fmt.Println("  Launches an interactive terminal UI for browsing ramdisk volume images.")
	fmt.Println("  The volume is opened read-only; nothing in the image is ever modified.")
	fmt.Println()
	fmt.Println("  Features:")
	fmt.Println("    - Split-pane layout (directory tree + file content)")
	fmt.Println("    - Keyboard navigation (vim-style keys supported)")
	fmt.Println("    - Expand/collapse directories")
	fmt.Println("    - Text and hexdump views of file content (x)")
	fmt.Println("    - Live name filter (/)")
	fmt.Println("    - File detail popup with inode and block layout (i)")
	fmt.Println("    - Copy paths and file content to the clipboard (c, y)")
	fmt.Println()
	fmt.Println("  Navigation:")
	fmt.Println("    ↑/k, ↓/j    Navigate up/down")
	fmt.Println("    →/l, Enter  Expand directory / open file")
	fmt.Println("    ←/h         Collapse directory / go to parent")
	fmt.Println("    Tab         Switch between tree and content panes")
	fmt.Println("    ?           Show help")
	fmt.Println("    q           Quit")
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("  -d, --debug    Enable debug logging to ~/.sharkexplorer/logs/")
	fmt.Println("  -h, --help     Show this help message")
	fmt.Println("  -v, --version  Show version information")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("  sharkexplorer disk.img")
	fmt.Println("  SHARKEXPLORER_LOG=1 sharkexplorer disk.img")
	fmt.Println()
	fmt.Println("For non-interactive operations, use the 'sharkctl' command instead.")
}
