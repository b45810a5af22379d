package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"img2text"
	"img2text/imageutil"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
)

type step int

const (
	stepPath step = iota
	stepWidth
	stepEmotion
	stepOutput
	stepDone
)

// promptModel walks the user through the same questions the converter
// needs on the command line: image path, width, emotion, output path.
// Invalid answers re-prompt instead of aborting.
type promptModel struct {
	step   step
	input  string
	errMsg string

	imagePath    string
	targetWidth  int
	emotionLabel string
	outputPath   string

	result  string
	failed  bool
	preview []string
}

func newPromptModel() promptModel {
	return promptModel{step: stepPath}
}

func (m promptModel) Init() tea.Cmd { return nil }

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.step == stepDone {
		return m, tea.Quit
	}

	switch keyMsg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyEnter:
		return m.submit()
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
		return m, nil
	case tea.KeySpace:
		m.input += " "
		return m, nil
	case tea.KeyRunes:
		m.input += string(keyMsg.Runes)
		return m, nil
	}
	return m, nil
}

// submit validates the current answer and advances to the next step.
func (m promptModel) submit() (tea.Model, tea.Cmd) {
	answer := strings.TrimSpace(m.input)

	switch m.step {
	case stepPath:
		if _, err := os.Stat(answer); err != nil {
			m.errMsg = "invalid image path, please try again"
			m.input = ""
			return m, nil
		}
		m.imagePath = answer
		m.step = stepWidth

	case stepWidth:
		if answer == "" {
			m.targetWidth = 100
		} else {
			w, err := strconv.Atoi(answer)
			if err != nil || w <= 0 {
				m.errMsg = "width must be a positive integer"
				m.input = ""
				return m, nil
			}
			m.targetWidth = w
		}
		m.step = stepEmotion

	case stepEmotion:
		// Any label is accepted; unknown ones fall back to Neutral.
		m.emotionLabel = answer
		m.step = stepOutput

	case stepOutput:
		if answer == "" {
			answer = "text_art.txt"
		}
		m.outputPath = answer
		m = m.convert()
		m.step = stepDone
	}

	m.input = ""
	m.errMsg = ""
	return m, nil
}

// convert runs the full pipeline with the collected answers and records
// the outcome for the done screen.
func (m promptModel) convert() promptModel {
	set := img2text.DefaultPaletteSet()
	r := img2text.NewRenderer(
		img2text.WithWidth(m.targetWidth),
		img2text.WithPalette(set.Select(m.emotionLabel)),
	)

	art, err := r.RenderFile(m.imagePath)
	if err != nil {
		m.failed = true
		m.result = fmt.Sprintf("error generating text art: %v", err)
		return m
	}
	if err := imageutil.WriteText(art, m.outputPath); err != nil {
		m.failed = true
		m.result = fmt.Sprintf("error saving text art: %v", err)
		return m
	}

	m.result = fmt.Sprintf("text art generated and saved to %s", m.outputPath)
	rows := strings.Split(art, "\n")
	if len(rows) > 12 {
		rows = rows[:12]
	}
	m.preview = rows
	return m
}

func (m promptModel) View() string {
	var b strings.Builder
	b.WriteString(cyan.Render("img2text") + dim.Render("  image to text art") + "\n\n")

	switch m.step {
	case stepPath:
		b.WriteString("Enter the path to the image: ")
	case stepWidth:
		b.WriteString("Enter the desired width " + dim.Render("(default 100)") + ": ")
	case stepEmotion:
		b.WriteString("Enter the emotion " +
			dim.Render("(Happy, Sad, Angry, Neutral; default Neutral)") + ": ")
	case stepOutput:
		b.WriteString("Enter the output path " + dim.Render("(default text_art.txt)") + ": ")
	case stepDone:
		if m.failed {
			b.WriteString(yellow.Render(m.result) + "\n")
		} else {
			b.WriteString(green.Render(m.result) + "\n")
			for _, row := range m.preview {
				b.WriteString(dim.Render(row) + "\n")
			}
		}
		b.WriteString("\n" + dim.Render("press any key to exit"))
		return b.String()
	}

	b.WriteString(m.input + "█\n")
	if m.errMsg != "" {
		b.WriteString(yellow.Render(m.errMsg) + "\n")
	}
	b.WriteString("\n" + dim.Render("enter to confirm · esc to quit"))
	return b.String()
}
