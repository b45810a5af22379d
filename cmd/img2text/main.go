package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"img2text"
	"img2text/imageutil"
)

var (
	width       int
	emotion     string
	output      string
	paletteFile string
	verbose     bool
)

// main registers the img2text commands and executes the root command.
// With no subcommand the interactive prompt mode starts.
func main() {
	rootCmd := &cobra.Command{
		Use:   "img2text",
		Short: "emotion-biased image to text art converter",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := tea.NewProgram(newPromptModel())
			_, err := p.Run()
			return err
		},
	}

	renderCmd := &cobra.Command{
		Use:   "render [image]",
		Short: "render an image to text art",
		Args:  cobra.ExactArgs(1),
		RunE:  runRender,
	}
	renderCmd.Flags().IntVar(&width, "width", 100, "output width in characters")
	renderCmd.Flags().StringVar(&emotion, "emotion", "Neutral",
		"emotion label (Happy, Sad, Angry, Neutral, or a custom palette label)")
	renderCmd.Flags().StringVar(&output, "output", "",
		"output file (prints to stdout if empty)")
	renderCmd.Flags().StringVar(&paletteFile, "palettes", "",
		"yaml palette file overlaid on the built-in set")
	renderCmd.Flags().BoolVar(&verbose, "verbose", false,
		"print pipeline events to stderr")

	palettesCmd := &cobra.Command{
		Use:   "palettes",
		Short: "list available palettes",
		RunE:  listPalettes,
	}
	palettesCmd.Flags().StringVar(&paletteFile, "palettes", "",
		"yaml palette file overlaid on the built-in set")

	fontOrderCmd := &cobra.Command{
		Use:   "font-order [font.ttf]",
		Short: "check palette glyph ordering against a font's ink densities",
		Args:  cobra.ExactArgs(1),
		RunE:  runFontOrder,
	}
	fontOrderCmd.Flags().StringVar(&emotion, "emotion", "Neutral",
		"emotion label whose palette to check")
	fontOrderCmd.Flags().StringVar(&paletteFile, "palettes", "",
		"yaml palette file overlaid on the built-in set")

	rootCmd.AddCommand(renderCmd, palettesCmd, fontOrderCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadPalettes returns the built-in palette set, with the user's file
// overlaid when --palettes is given.
func loadPalettes() (*img2text.PaletteSet, error) {
	if paletteFile == "" {
		return img2text.DefaultPaletteSet(), nil
	}
	return img2text.LoadPaletteSet(paletteFile)
}

func runRender(cmd *cobra.Command, args []string) error {
	set, err := loadPalettes()
	if err != nil {
		return err
	}

	opts := []img2text.RendererOption{
		img2text.WithWidth(width),
		img2text.WithPalette(set.Select(emotion)),
	}
	if verbose {
		opts = append(opts, img2text.WithEventSink(func(ev img2text.Event) {
			fmt.Fprintf(os.Stderr, "%-7s %s (%dx%d, %v)\n",
				ev.Stage, ev.Message, ev.Width, ev.Height, ev.Elapsed)
		}))
	}

	r := img2text.NewRenderer(opts...)
	art, err := r.RenderFile(args[0])
	if err != nil {
		return err
	}

	if output == "" {
		fmt.Println(art)
		return nil
	}
	if err := imageutil.WriteText(art, output); err != nil {
		return err
	}
	fmt.Printf("text art saved to %s\n", output)
	return nil
}

func listPalettes(cmd *cobra.Command, args []string) error {
	set, err := loadPalettes()
	if err != nil {
		return err
	}
	for _, label := range set.Labels() {
		p := set.Select(label)
		fmt.Printf("%s  %s  (%d glyphs)\n",
			cyan.Render(fmt.Sprintf("%-10s", label)),
			dim.Render("["+p.String()+"]"), len(p))
	}
	return nil
}

func runFontOrder(cmd *cobra.Command, args []string) error {
	set, err := loadPalettes()
	if err != nil {
		return err
	}
	p := set.Select(emotion)

	ttf, err := img2text.LoadFont(args[0])
	if err != nil {
		return err
	}
	densities := img2text.GlyphDensities(ttf, p)

	fmt.Printf("palette %q under %s:\n", emotion, args[0])
	for _, r := range p {
		fmt.Printf("  %q  coverage %2d/64\n", string(r), densities[r])
	}

	if violations := img2text.CheckPaletteOrder(p, densities); len(violations) > 0 {
		for _, i := range violations {
			fmt.Printf("%s glyph %q (index %d) is lighter than %q before it\n",
				yellow.Render("warning:"), string(p[i]), i, string(p[i-1]))
		}
		fmt.Println("suggested order:",
			"["+img2text.OrderByDensity(p, densities).String()+"]")
		return nil
	}
	fmt.Println(green.Render("ordering holds: lightest to densest"))
	return nil
}
