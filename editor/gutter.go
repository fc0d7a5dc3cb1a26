package editor

import "strconv"

func gutterDigits(lineCount int) int {
	if lineCount < 1 {
		lineCount = 1
	}
	return len(strconv.Itoa(lineCount))
}

// gutterWidth is the line number column plus its separator, or 0 when line
// numbers are off.
func (m Model) gutterWidth(lineCount int) int {
	if !m.cfg.ShowLineNums {
		return 0
	}
	return gutterDigits(lineCount) + 1
}
