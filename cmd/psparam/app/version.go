package app

import (
	"fmt"
	"io"
	"os"

	"github.com/phillarmonic/figlet/figletlib"
)

// Domain: Version Display
// This file contains logic for displaying version information

// ShowVersion displays version information with ASCII art
func ShowVersion(w io.Writer, version, commit, date string) error {
	loader := figletlib.NewEmbededLoader()
	font, err := loader.GetFontByName("standard")
	if err != nil {
		return err
	}

	startColor, _ := figletlib.ParseColor("#00FF95")
	endColor, _ := figletlib.ParseColor("#00C2FF")
	gradientConfig := figletlib.ColorConfig{
		Mode:       figletlib.ColorModeGradient,
		StartColor: startColor,
		EndColor:   endColor,
	}

	fmt.Fprintln(w, "")
	err = printTo(w, func() {
		figletlib.PrintColoredMsg("psparam", font, 80, font.Settings(), "left", gradientConfig)
	})
	if err != nil {
		return fmt.Errorf("failed to render banner: %w", err)
	}

	fmt.Fprintln(w, "psparam - parameter declaration parser")
	fmt.Fprintln(w, "")
	fmt.Fprintf(w, "Version %s\n", version)
	if commit != "unknown" {
		fmt.Fprintf(w, "commit: %s\n", commit)
	}
	if date != "unknown" {
		fmt.Fprintf(w, "built: %s\n", date)
	}
	return nil
}

// printTo runs render, which writes to os.Stdout, and copies its output to w.
// It swaps the process stdout while render runs and is not safe for concurrent use.
func printTo(w io.Writer, render func()) error {
	if f, ok := w.(*os.File); ok && f == os.Stdout {
		render()
		return nil
	}

	r, pw, err := os.Pipe()
	if err != nil {
		return err
	}
	defer r.Close()

	copied := make(chan error, 1)
	go func() {
		_, err := io.Copy(w, r)
		copied <- err
	}()

	stdout := os.Stdout
	os.Stdout = pw
	render()
	os.Stdout = stdout

	if err := pw.Close(); err != nil {
		return err
	}
	return <-copied
}
