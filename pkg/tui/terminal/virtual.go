// ABOUTME: VirtualTerminal implements Terminal for tests without a real TTY
// ABOUTME: Records raw output and replays it onto an emulated single-cursor screen

package terminal

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/mauromedda/termprogress/pkg/tui/width"
)

const tabStop = 8

// VirtualTerminal is a fake Terminal for unit tests. Besides keeping every
// byte written, it interprets the subset of control output that progress
// indicators produce (printable text, \b, \r, \n, \t and the CSI cursor
// and erase sequences) so tests can assert on what a user would see.
//
// There is no autowrap: lines grow past the configured width.
type VirtualTerminal struct {
	mu      sync.Mutex
	buf     bytes.Buffer
	width   int
	height  int
	rows    [][]string
	row     int
	col     int
	pending string
}

// NewVirtualTerminal returns a VirtualTerminal with the given dimensions.
func NewVirtualTerminal(width, height int) *VirtualTerminal {
	return &VirtualTerminal{
		width:  width,
		height: height,
		rows:   [][]string{nil},
	}
}

// Write records p and applies it to the screen. Escape sequences and
// UTF-8 runes split across writes are carried over to the next call.
func (v *VirtualTerminal) Write(p []byte) (int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	n, err := v.buf.Write(p)
	if err != nil {
		return n, fmt.Errorf("writing to virtual buffer: %w", err)
	}
	v.apply(v.pending + string(p))
	return n, nil
}

// Size returns the configured terminal dimensions.
func (v *VirtualTerminal) Size() (width, height int, err error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.width, v.height, nil
}

// --- Test helpers (not part of Terminal interface) ---

// Output returns every byte written so far, control sequences included.
func (v *VirtualTerminal) Output() string {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.buf.String()
}

// Lines returns the screen contents from the top row down to the cursor
// row, one string per row, with trailing blanks removed. A trailing newline
// therefore yields a final empty row.
func (v *VirtualTerminal) Lines() []string {
	v.mu.Lock()
	defer v.mu.Unlock()

	lines := make([]string, len(v.rows))
	for i := range v.rows {
		lines[i] = v.lineLocked(i)
	}
	return lines
}

// Line returns row i of the screen with trailing blanks removed, or ""
// when the row was never touched.
func (v *VirtualTerminal) Line(i int) string {
	v.mu.Lock()
	defer v.mu.Unlock()

	if i < 0 || i >= len(v.rows) {
		return ""
	}
	return v.lineLocked(i)
}

// Screen returns all rows joined by newlines.
func (v *VirtualTerminal) Screen() string {
	return strings.Join(v.Lines(), "\n")
}

// Cursor returns the zero-based cursor row and column.
func (v *VirtualTerminal) Cursor() (row, col int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.row, v.col
}

// Reset clears the recorded output and the screen.
func (v *VirtualTerminal) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.buf.Reset()
	v.rows = [][]string{nil}
	v.row, v.col = 0, 0
	v.pending = ""
}

// SetSize updates the reported dimensions.
func (v *VirtualTerminal) SetSize(width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.width = width
	v.height = height
}

func (v *VirtualTerminal) lineLocked(i int) string {
	var b strings.Builder
	for _, cell := range v.rows[i] {
		if cell == "" {
			// right half of a wide rune
			continue
		}
		b.WriteString(cell)
	}
	return strings.TrimRight(b.String(), " ")
}

// apply interprets s. Must be called with v.mu held.
func (v *VirtualTerminal) apply(s string) {
	v.pending = ""
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == '\x1b':
			end := width.SequenceEnd(s, i)
			seq := s[i:end]
			if end == len(s) && !sequenceComplete(seq) {
				v.pending = seq
				return
			}
			v.escape(seq)
			i = end
			continue
		case c == '\r':
			v.col = 0
		case c == '\n':
			v.row++
			v.col = 0
			v.ensureRow()
		case c == '\b':
			if v.col > 0 {
				v.col--
			}
		case c == '\t':
			v.col += tabStop - v.col%tabStop
		case c < 0x20 || c == 0x7F:
			// bell and other controls do not move the cursor
		default:
			if !utf8.FullRuneInString(s[i:]) {
				v.pending = s[i:]
				return
			}
			r, size := utf8.DecodeRuneInString(s[i:])
			v.put(string(r), runewidth.RuneWidth(r))
			i += size
			continue
		}
		i++
	}
}

// put writes a rune occupying w cells at the cursor. Zero-width runes
// attach to the preceding cell.
func (v *VirtualTerminal) put(r string, w int) {
	line := v.rows[v.row]
	if w == 0 {
		if v.col > 0 && v.col <= len(line) {
			line[v.col-1] += r
		}
		return
	}
	for len(line) < v.col+w {
		line = append(line, " ")
	}
	line[v.col] = r
	for k := 1; k < w; k++ {
		line[v.col+k] = ""
	}
	v.rows[v.row] = line
	v.col += w
}

func (v *VirtualTerminal) ensureRow() {
	for len(v.rows) <= v.row {
		v.rows = append(v.rows, nil)
	}
}

// escape handles one complete escape sequence. Unknown sequences are
// consumed without effect.
func (v *VirtualTerminal) escape(seq string) {
	if len(seq) < 3 || seq[1] != '[' {
		return
	}
	final := seq[len(seq)-1]
	n := csiParam(seq[2 : len(seq)-1])

	switch final {
	case 'D':
		v.col -= max(n, 1)
		if v.col < 0 {
			v.col = 0
		}
	case 'C':
		v.col += max(n, 1)
	case 'G':
		v.col = max(n, 1) - 1
	case 'K':
		v.eraseLine(n)
	}
}

// eraseLine implements EL: 0 clears cursor to end, 1 start to cursor,
// 2 the whole line. The cursor does not move.
func (v *VirtualTerminal) eraseLine(mode int) {
	line := v.rows[v.row]
	switch mode {
	case 0:
		if v.col < len(line) {
			v.rows[v.row] = line[:v.col]
		}
	case 1:
		for k := 0; k <= v.col && k < len(line); k++ {
			line[k] = " "
		}
	case 2:
		v.rows[v.row] = nil
	}
}

// csiParam parses the first numeric CSI parameter; absent or malformed
// parameters yield 0.
func csiParam(params string) int {
	if i := strings.IndexByte(params, ';'); i >= 0 {
		params = params[:i]
	}
	n, err := strconv.Atoi(params)
	if err != nil {
		return 0
	}
	return n
}

func sequenceComplete(seq string) bool {
	if len(seq) < 2 {
		return false
	}
	switch seq[1] {
	case '[':
		last := seq[len(seq)-1]
		return len(seq) >= 3 && last >= 0x40 && last <= 0x7E
	case ']':
		return strings.HasSuffix(seq, "\x07") || strings.HasSuffix(seq, "\x1b\\")
	case '_', 'P', '^':
		return strings.HasSuffix(seq, "\x1b\\")
	case '(', ')':
		return len(seq) >= 3
	}
	return true
}
