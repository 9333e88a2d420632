package diff

import (
	"strconv"
	"strings"
	"testing"
)

func TestUnified_Identical(t *testing.T) {
	lines := []string{"a\n", "b\n", "c\n"}
	if out := Unified(lines, lines, "old", "new"); out != "" {
		t.Errorf("identical inputs should produce empty diff, got:\n%s", out)
	}
	if out := Unified(nil, nil, "old", "new"); out != "" {
		t.Errorf("empty inputs should produce empty diff, got:\n%s", out)
	}
}

func TestUnified_SingleReplace(t *testing.T) {
	before := []string{"a\n", "b\n", "c\n"}
	after := []string{"a\n", "x\n", "c\n"}

	got := Unified(before, after, "before.txt", "after.txt")
	want := "--- before.txt\n" +
		"+++ after.txt\n" +
		"@@ -1,3 +1,3 @@\n" +
		" a\n" +
		"-b\n" +
		"+x\n" +
		" c\n"
	if got != want {
		t.Errorf("unexpected diff:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestUnified_PureInsertion(t *testing.T) {
	got := Unified(nil, []string{"a\n"}, "old", "new")
	want := "--- old\n" +
		"+++ new\n" +
		"@@ -0,0 +1 @@\n" +
		"+a\n"
	if got != want {
		t.Errorf("unexpected diff:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestUnified_PureDeletion(t *testing.T) {
	got := Unified([]string{"a\n", "b\n"}, nil, "old", "new")
	want := "--- old\n" +
		"+++ new\n" +
		"@@ -1,2 +0,0 @@\n" +
		"-a\n" +
		"-b\n"
	if got != want {
		t.Errorf("unexpected diff:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestUnified_SplitsDistantChangesIntoHunks(t *testing.T) {
	var before, after []string
	for i := 0; i < 20; i++ {
		line := "line\n"
		before = append(before, line)
		after = append(after, line)
	}
	before[0] = "first-old\n"
	after[0] = "first-new\n"
	before[19] = "last-old\n"
	after[19] = "last-new\n"

	got := Unified(before, after, "old", "new")
	if n := strings.Count(got, "@@ -"); n != 2 {
		t.Errorf("expected 2 hunks, got %d:\n%s", n, got)
	}
	// Context is capped at 3 lines per side of each change.
	if strings.Count(got, " line\n") != 6 {
		t.Errorf("expected 6 context lines, got:\n%s", got)
	}
}

func TestUnified_NoTrailingNewline(t *testing.T) {
	before := []string{"a\n", "b"}
	after := []string{"a\n", "b\n"}

	got := Unified(before, after, "old", "new")
	if !strings.Contains(got, "-b\n\\ No newline at end of file\n") {
		t.Errorf("expected no-newline marker after removed line:\n%s", got)
	}
	if !strings.Contains(got, "+b\n") {
		t.Errorf("expected added line with newline:\n%s", got)
	}
}

func TestUnified_Deterministic(t *testing.T) {
	before := Lines("a\nb\nc\nd\ne\n")
	after := Lines("a\nc\nb\ne\nf\n")

	first := Unified(before, after, "old", "new")
	for i := 0; i < 10; i++ {
		if out := Unified(before, after, "old", "new"); out != first {
			t.Fatalf("diff output not deterministic:\n%s\nvs\n%s", first, out)
		}
	}
}

func TestUnified_RoundTrip(t *testing.T) {
	cases := []struct {
		name          string
		before, after string
	}{
		{"replace", "a\nb\nc\n", "a\nx\nc\n"},
		{"insert into empty", "", "a\n"},
		{"delete all", "a\nb\n", ""},
		{"long with scattered edits",
			"1\n2\n3\n4\n5\n6\n7\n8\n9\n10\n11\n12\n13\n14\n15\n",
			"1\n2\nthree\n4\n5\n6\n7\n8\n9\n10\n11\n12\n13\nfourteen\n15\nsixteen\n"},
		{"no trailing newline", "a\nb", "a\nb\nc"},
		{"total rewrite", "x\ny\nz\n", "p\nq\n"},
		{"swap", "a\nb\nc\nd\ne\n", "a\nc\nb\ne\nd\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			before := Lines(tc.before)
			after := Lines(tc.after)
			patch := Unified(before, after, "old", "new")
			rebuilt := applyPatch(t, before, patch)
			if got := strings.Join(rebuilt, ""); got != tc.after {
				t.Errorf("round trip failed:\npatch:\n%s\ngot  %q\nwant %q", patch, got, tc.after)
			}
		})
	}
}

func TestLines(t *testing.T) {
	if got := Lines(""); got != nil {
		t.Errorf("Lines(\"\") = %v, want nil", got)
	}
	got := Lines("a\nb")
	if len(got) != 2 || got[0] != "a\n" || got[1] != "b" {
		t.Errorf("Lines(\"a\\nb\") = %q", got)
	}
	got = Lines("a\n")
	if len(got) != 1 || got[0] != "a\n" {
		t.Errorf("Lines(\"a\\n\") = %q", got)
	}
}

// applyPatch replays a unified diff against before and returns the rebuilt
// after lines. It fails the test on any context or deletion mismatch, so the
// round-trip tests also verify the hunk headers and line prefixes.
func applyPatch(t *testing.T, before []string, patch string) []string {
	t.Helper()

	if patch == "" {
		out := make([]string, len(before))
		copy(out, before)
		return out
	}

	var out []string
	pos := 0 // next unread index in before

	lines := strings.SplitAfter(patch, "\n")
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if line == "" || strings.HasPrefix(line, "--- ") || strings.HasPrefix(line, "+++ ") {
			continue
		}
		if strings.HasPrefix(line, "@@ ") {
			oldStart := parseOldStart(t, line)
			// Copy unchanged lines between hunks.
			for pos < oldStart {
				out = append(out, before[pos])
				pos++
			}
			continue
		}
		if strings.HasPrefix(line, "\\") {
			continue // no-newline marker; previous emitted line already lacks one
		}

		content := line[1:]
		// Un-terminate the line when the marker follows.
		if i+1 < len(lines) && strings.HasPrefix(lines[i+1], "\\") {
			content = strings.TrimSuffix(content, "\n")
		}
		switch line[0] {
		case ' ':
			if pos >= len(before) || before[pos] != content {
				t.Fatalf("context mismatch at line %d: have %q, patch says %q", pos, at(before, pos), content)
			}
			out = append(out, content)
			pos++
		case '-':
			if pos >= len(before) || before[pos] != content {
				t.Fatalf("delete mismatch at line %d: have %q, patch says %q", pos, at(before, pos), content)
			}
			pos++
		case '+':
			out = append(out, content)
		default:
			t.Fatalf("unexpected patch line: %q", line)
		}
	}

	for pos < len(before) {
		out = append(out, before[pos])
		pos++
	}
	return out
}

// at returns the line at i, or a placeholder past the end.
func at(s []string, i int) string {
	if i >= len(s) {
		return "<past end>"
	}
	return s[i]
}

// parseOldStart extracts the 0-based offset of the hunk in the old file
// from a header like "@@ -2,4 +2,5 @@". Lengths of 1 may be omitted; a
// length of 0 means the start already names the line before the hunk.
func parseOldStart(t *testing.T, header string) int {
	t.Helper()
	fields := strings.Fields(strings.TrimSuffix(header, "\n"))
	if len(fields) != 4 || !strings.HasPrefix(fields[1], "-") {
		t.Fatalf("bad hunk header %q", header)
	}
	nums := strings.SplitN(fields[1][1:], ",", 2)
	start, err := strconv.Atoi(nums[0])
	if err != nil {
		t.Fatalf("bad hunk header %q: %v", header, err)
	}
	if len(nums) == 2 && nums[1] == "0" {
		return start
	}
	return start - 1
}
