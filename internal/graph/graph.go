// Package graph reads application transition graphs and renders them into
// the compact form the report prompt uses.
//
// A graph file has a "Transitions" block followed by a "States" block:
//
//	Transitions
//	<hash>: (s:<screen>,t:<screen>): [id=..., act=(1) click, cp=[ty=Button, idx=ok, tx=OK, dsc=]] weight=3
//	States
//	<hash>, MainActivity, ...
//
// Screen hashes are renamed S1..Sn in sorted hash order and transition hashes
// T1..Tn in order of first appearance.
package graph

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

const UnknownScreen = "Unknown Screen"

var (
	transitionLine = regexp.MustCompile(`^[a-f0-9]{64}:`)
	stateLine      = regexp.MustCompile(`^[a-f0-9]{64},`)
	stateHash      = regexp.MustCompile(`^[a-f0-9]{64}`)
	stateName      = regexp.MustCompile(`^[a-f0-9]{64},\s*([^,]+),`)
	endpoints      = regexp.MustCompile(`\(s:\s*([a-f0-9]+)\s*,\s*t:\s*([a-f0-9]+)\s*\)`)
	transitionHead = regexp.MustCompile(`^[a-f0-9]{64}:\s*\(s:\s*[a-f0-9]+\s*,\s*t:\s*[a-f0-9]+\s*\):`)

	simplifiedHead = regexp.MustCompile(`^(T\d+:\s*\(s:S\d+,t:S\d+\)):(.*)`)
	actionField    = regexp.MustCompile(`act=\(\d+\)\s*([^,\]]+)`)
	componentField = regexp.MustCompile(`cp=(null|\[.*?\])`)
	typeField      = regexp.MustCompile(`ty=([^,\]]+)`)
	identField     = regexp.MustCompile(`idx=([^,\]]+)`)
	textField      = regexp.MustCompile(`tx=([^,\]]+)`)
	descField      = regexp.MustCompile(`dsc=([^\]]*)`)

	weightSuffix   = regexp.MustCompile(`\s*weight=.*`)
	transitionRefs = regexp.MustCompile(`<(T\d+)>`)
)

// Transition is one simplified edge of the graph.
type Transition struct {
	ID      string // T#
	Hash    string
	Source  string // S# (or the raw hash if the screen is unknown)
	Target  string
	Details string // text after the endpoint header
}

// Line renders the transition as "T#: (s:S#,t:S#): details".
func (t Transition) Line() string {
	return fmt.Sprintf("%s: (s:%s,t:%s): %s", t.ID, t.Source, t.Target, t.Details)
}

type Graph struct {
	Transitions []Transition

	transitionIDs map[string]string // T# -> hash
	screenIDs     map[string]string // S# -> hash
	screenNames   map[string]string // hash -> name, empty when only seen in transitions
}

// TransitionHash returns the original hash of a short transition ID.
func (g *Graph) TransitionHash(id string) (string, bool) {
	h, ok := g.transitionIDs[id]
	return h, ok
}

// ScreenHash returns the original hash of a short screen ID.
func (g *Graph) ScreenHash(id string) (string, bool) {
	h, ok := g.screenIDs[id]
	return h, ok
}

// LoadFile parses the graph stored at path. Failures are *ReadError.
func LoadFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}
	defer f.Close()

	g, err := Parse(f)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}
	return g, nil
}

// Parse reads the whole graph. Lines may be of any length.
func Parse(r io.Reader) (*Graph, error) {
	var lines []string
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			lines = append(lines, strings.TrimSpace(line))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}

	g := &Graph{
		transitionIDs: make(map[string]string),
		screenIDs:     make(map[string]string),
		screenNames:   make(map[string]string),
	}
	reverseScreens := g.collectScreens(lines)
	g.collectTransitions(lines, reverseScreens)
	return g, nil
}

func (g *Graph) addScreen(hash string) {
	if _, ok := g.screenNames[hash]; !ok {
		g.screenNames[hash] = ""
	}
}

// collectScreens scans every line for screen hashes and assigns S IDs over
// the sorted hash set. It returns hash -> S#.
func (g *Graph) collectScreens(lines []string) map[string]string {
	for _, line := range lines {
		switch {
		case transitionLine.MatchString(line) && strings.Contains(line, "(s:") && strings.Contains(line, ",t:"):
			if m := endpoints.FindStringSubmatch(line); m != nil {
				g.addScreen(m[1])
				g.addScreen(m[2])
			}
		case stateLine.MatchString(line):
			hash := stateHash.FindString(line)
			g.addScreen(hash)
			name := UnknownScreen
			if m := stateName.FindStringSubmatch(line); m != nil {
				name = strings.TrimSpace(m[1])
			}
			g.screenNames[hash] = name
		}
	}

	sorted := make([]string, 0, len(g.screenNames))
	for hash := range g.screenNames {
		sorted = append(sorted, hash)
	}
	sort.Strings(sorted)

	reverse := make(map[string]string, len(sorted))
	for i, hash := range sorted {
		id := "S" + strconv.Itoa(i+1)
		reverse[hash] = id
		g.screenIDs[id] = hash
	}
	return reverse
}

func (g *Graph) collectTransitions(lines []string, screens map[string]string) {
	reverse := make(map[string]string)
	inside := false

	for _, line := range lines {
		if strings.HasPrefix(line, "Transitions") {
			inside = true
			continue
		}
		if strings.HasPrefix(line, "States") {
			break
		}
		if !inside || !transitionLine.MatchString(line) {
			continue
		}

		hash, rest, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		hash = strings.TrimSpace(hash)

		m := endpoints.FindStringSubmatch(rest)
		if m == nil {
			continue
		}

		id, seen := reverse[hash]
		if !seen {
			id = "T" + strconv.Itoa(len(reverse)+1)
			reverse[hash] = id
			g.transitionIDs[id] = hash
		}

		g.Transitions = append(g.Transitions, Transition{
			ID:      id,
			Hash:    hash,
			Source:  lookup(screens, m[1]),
			Target:  lookup(screens, m[2]),
			Details: strings.TrimSpace(transitionHead.ReplaceAllString(line, "")),
		})
	}
}

func lookup(m map[string]string, key string) string {
	if v, ok := m[key]; ok {
		return v
	}
	return key
}

// Lines returns the simplified transition lines.
func (g *Graph) Lines() []string {
	out := make([]string, 0, len(g.Transitions))
	for _, t := range g.Transitions {
		out = append(out, t.Line())
	}
	return out
}

// Screens lists "S#: name" ordered by screen number.
func (g *Graph) Screens() string {
	type entry struct {
		n    int
		line string
	}
	entries := make([]entry, 0, len(g.screenIDs))
	for id, hash := range g.screenIDs {
		n, _ := strconv.Atoi(id[1:])
		name := g.screenNames[hash]
		if name == "" {
			name = UnknownScreen
		}
		entries = append(entries, entry{n: n, line: id + ": " + name})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].n < entries[j].n })

	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.line
	}
	return strings.Join(out, "\n")
}

// Extract rewrites simplified lines as readable action/component summaries.
// Lines that do not start with a "T#: (s:S#,t:S#):" header are skipped.
func Extract(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		m := simplifiedHead.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		header := strings.TrimSpace(m[1])
		details := strings.TrimSpace(m[2])

		var action, compType, compIdent, compText, compDesc string
		if am := actionField.FindStringSubmatch(details); am != nil {
			action = strings.TrimSpace(am[1])
		}

		var component string
		if cm := componentField.FindStringSubmatch(details); cm != nil && strings.HasPrefix(cm[1], "[") {
			component = strings.TrimSpace(cm[1][1 : len(cm[1])-1])
		}
		if component != "" {
			compType = firstGroup(typeField, component)
			compIdent = firstGroup(identField, component)
			compText = firstGroup(textField, component)
			compDesc = firstGroup(descField, component)
		}

		out = append(out, fmt.Sprintf(
			`%s: Action = "%s"; Component = [Type = "%s", Identifier = "%s", Text = "%s", Description = "%s"]`,
			header, action, compType, compIdent, compText, compDesc,
		))
	}
	return out
}

func firstGroup(re *regexp.Regexp, s string) string {
	if m := re.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// Clean drops everything from "weight=" to the end of each line.
func Clean(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = strings.TrimSpace(weightSuffix.ReplaceAllString(line, ""))
	}
	return out
}

// RestoreTransitionIDs replaces every <T#> reference with <hash>. Unknown IDs
// are left as they are.
func (g *Graph) RestoreTransitionIDs(text string) string {
	return transitionRefs.ReplaceAllStringFunc(text, func(ref string) string {
		id := ref[1 : len(ref)-1]
		if hash, ok := g.transitionIDs[id]; ok {
			return "<" + hash + ">"
		}
		return ref
	})
}

// Locate finds the graph file of an application below dataDir:
// <dataDir>/<Name_With_Underscores>/<first subdirectory>/<first *graph.txt file>.
func Locate(dataDir, application string) (string, error) {
	appDir := filepath.Join(dataDir, strings.ReplaceAll(application, " ", "_"))

	entries, err := os.ReadDir(appDir)
	if err != nil {
		return "", &NotFoundError{Application: application, Err: err}
	}

	var graphDir string
	for _, e := range entries {
		if e.IsDir() {
			graphDir = filepath.Join(appDir, e.Name())
			break
		}
	}
	if graphDir == "" {
		return "", &NotFoundError{Application: application, Err: fmt.Errorf("no graph folder in %s", appDir)}
	}

	files, err := os.ReadDir(graphDir)
	if err != nil {
		return "", &NotFoundError{Application: application, Err: err}
	}
	for _, f := range files {
		if !f.IsDir() && strings.HasSuffix(f.Name(), "graph.txt") {
			return filepath.Join(graphDir, f.Name()), nil
		}
	}
	return "", &NotFoundError{Application: application, Err: fmt.Errorf("no graph file in %s", graphDir)}
}

// ReadError reports a graph file that exists but could not be read.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read graph %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// NotFoundError reports a missing graph for an application.
type NotFoundError struct {
	Application string
	Err         error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("graph for %q not found: %v", e.Application, e.Err)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}
