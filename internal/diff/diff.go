// Package diff produces line-based unified diffs.
package diff

import (
	"strconv"
	"strings"
)

// ContextLines is the number of unchanged lines shown around each change.
const ContextLines = 3

// noNewlineMarker follows any diff line whose source line has no trailing newline.
const noNewlineMarker = "\\ No newline at end of file\n"

// Lines splits s into lines, each keeping its trailing newline.
// A final line without a newline is returned as-is.
func Lines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// opcode describes how a[i1:i2] maps onto b[j1:j2].
type opcode struct {
	tag            byte // '=', '-', '+'
	i1, i2, j1, j2 int
}

// Unified returns the unified diff transforming before into after.
// Lines are compared as opaque units; each line should keep its trailing
// newline so the diff reproduces the original formatting. Identical inputs
// yield an empty string. Output is deterministic: ties between minimal edit
// scripts resolve toward the earliest common lines.
func Unified(before, after []string, labelBefore, labelAfter string) string {
	groups := groupOpcodes(opcodes(before, after), ContextLines)
	if len(groups) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("--- " + labelBefore + "\n")
	sb.WriteString("+++ " + labelAfter + "\n")

	for _, group := range groups {
		first, last := group[0], group[len(group)-1]
		sb.WriteString("@@ -" + formatRange(first.i1, last.i2) +
			" +" + formatRange(first.j1, last.j2) + " @@\n")
		for _, op := range group {
			switch op.tag {
			case '=':
				for _, line := range before[op.i1:op.i2] {
					writeLine(&sb, ' ', line)
				}
			case '-':
				for _, line := range before[op.i1:op.i2] {
					writeLine(&sb, '-', line)
				}
			case '+':
				for _, line := range after[op.j1:op.j2] {
					writeLine(&sb, '+', line)
				}
			}
		}
	}
	return sb.String()
}

// writeLine emits one diff line, adding the no-newline marker when the
// source line does not end in a newline.
func writeLine(sb *strings.Builder, prefix byte, line string) {
	sb.WriteByte(prefix)
	sb.WriteString(line)
	if !strings.HasSuffix(line, "\n") {
		sb.WriteString("\n")
		sb.WriteString(noNewlineMarker)
	}
}

// formatRange renders a hunk range as "start,length" with 1-based starts.
// A length of 1 omits the length; an empty range points at the line before it.
func formatRange(start, stop int) string {
	length := stop - start
	beginning := start + 1
	if length == 1 {
		return strconv.Itoa(beginning)
	}
	if length == 0 {
		beginning--
	}
	return strconv.Itoa(beginning) + "," + strconv.Itoa(length)
}

// opcodes computes a minimal edit script between a and b using
// longest-common-subsequence matching over whole lines. When several
// minimal scripts exist it keeps the earliest possible matches, so the
// result is deterministic.
func opcodes(a, b []string) []opcode {
	n, m := len(a), len(b)

	// lcs[i][j] is the LCS length of a[i:] and b[j:].
	lcs := make([][]int, n+1)
	for i := range lcs {
		lcs[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if a[i] == b[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else if lcs[i+1][j] >= lcs[i][j+1] {
				lcs[i][j] = lcs[i+1][j]
			} else {
				lcs[i][j] = lcs[i][j+1]
			}
		}
	}

	var ops []opcode
	push := func(tag byte, i1, i2, j1, j2 int) {
		if last := len(ops) - 1; last >= 0 && ops[last].tag == tag {
			ops[last].i2 = i2
			ops[last].j2 = j2
			return
		}
		ops = append(ops, opcode{tag, i1, i2, j1, j2})
	}

	i, j := 0, 0
	for i < n && j < m {
		switch {
		case a[i] == b[j]:
			push('=', i, i+1, j, j+1)
			i++
			j++
		case lcs[i+1][j] >= lcs[i][j+1]:
			push('-', i, i+1, j, j)
			i++
		default:
			push('+', i, i, j, j+1)
			j++
		}
	}
	if i < n {
		push('-', i, n, j, j)
	}
	if j < m {
		push('+', i, n, j, m)
	}
	return ops
}

// groupOpcodes trims leading/trailing unchanged runs to n context lines and
// splits the edit script into hunks wherever an unchanged run exceeds 2n lines.
func groupOpcodes(ops []opcode, n int) [][]opcode {
	// Drop a script that is a single unchanged run (identical inputs).
	if len(ops) == 0 || (len(ops) == 1 && ops[0].tag == '=') {
		return nil
	}

	if ops[0].tag == '=' {
		op := &ops[0]
		op.i1 = max(op.i1, op.i2-n)
		op.j1 = max(op.j1, op.j2-n)
	}
	if last := &ops[len(ops)-1]; last.tag == '=' {
		last.i2 = min(last.i2, last.i1+n)
		last.j2 = min(last.j2, last.j1+n)
	}

	var groups [][]opcode
	var group []opcode
	for _, op := range ops {
		if op.tag == '=' && op.i2-op.i1 > 2*n && len(group) > 0 {
			group = append(group, opcode{'=', op.i1, op.i1 + n, op.j1, op.j1 + n})
			groups = append(groups, group)
			group = []opcode{{'=', op.i2 - n, op.i2, op.j2 - n, op.j2}}
			continue
		}
		group = append(group, op)
	}
	if len(group) > 0 {
		groups = append(groups, group)
	}
	return groups
}
