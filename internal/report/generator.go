// Package report builds the bug report prompt from an application graph and
// asks the model to write the report.
package report

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/Rorical/RoriBug/internal/ai"
	"github.com/Rorical/RoriBug/internal/graph"
)

const promptTemplate = `
    **Android Bug Report Generator**

    You are an automated bug report generator for Android applications.

    Given a user-provided description of a bug and a set of application transitions with the action and component information, your task is to generate a complete and structured bug report. The action of each transitions represents an GUI interaction (e.g.,  tap, swipe, long tap, etc.) that a user can perform on the GUI component of an app screen.

    The report should include the following sections:

    - **Title**  
    - **Observed Behavior**  
    - **Expected Behavior**  
    - **Steps to Reproduce**  

    **Bug Description:**  
    "{user_input}"

    **Application Transitions (Graph Context):**  
    {transitions}

    **Instructions for Generating Steps to Reproduce:**

    1. Begin the steps by opening the application.  
    2. Assume this is the first time the app is being opened (fresh install).  
    3. Each step must describe one **specific user interaction** (e.g., tap, swipe, long tap, etc.).  
    4. Only include interactions that have a corresponding **transition** in the graph graph_data.  
    5. Each transition includes:
    - A **source screen (s)** — where the interaction starts.  
    - A **target screen (t)** — the result of the interaction.  
    6. The steps must form a **valid and complete path** in the transition graph, starting from the initial screen and ending at the screen where the bug occurs.  
    7. The **target screen** of one step must be the **source screen** of the next.  
    8. Use natural language to describe each step, referencing the interaction and screen information from the transition graph_data.  
    9. Append the **transition ID** to the end of each step in this format: ` + "`" + `<transition_id>` + "`" + `.  
    10. **Do not include** any steps that are not interactions or are not backed by a valid transition (e.g., "observe the error").  

    Follow these instructions strictly to ensure accuracy and consistency in the generated report.
    `

// BuildPrompt fills the template with the description and the simplified
// transition lines.
func BuildPrompt(description string, transitions []string) string {
	r := strings.NewReplacer(
		"{user_input}", description,
		"{transitions}", strings.Join(transitions, "\n"),
	)
	return r.Replace(promptTemplate)
}

type Generator struct {
	graphDir string
	ai       ai.Completer
}

func NewGenerator(graphDir string, completer ai.Completer) *Generator {
	return &Generator{graphDir: graphDir, ai: completer}
}

// Generate writes a report for application. Transition references in the
// model output are mapped back to their graph hashes. A missing graph is
// returned as *graph.NotFoundError and an unreadable one as *graph.ReadError.
func (g *Generator) Generate(ctx context.Context, application, description string) (string, error) {
	log.Printf("generating report for %q", application)

	path, err := graph.Locate(g.graphDir, application)
	if err != nil {
		return "", err
	}
	gr, err := graph.LoadFile(path)
	if err != nil {
		return "", err
	}
	log.Printf("loaded %s: %d transitions", path, len(gr.Transitions))

	out, err := g.ai.Complete(ctx, BuildPrompt(description, gr.Lines()))
	if err != nil {
		return "", fmt.Errorf("generate report: %w", err)
	}
	return gr.RestoreTransitionIDs(out), nil
}
