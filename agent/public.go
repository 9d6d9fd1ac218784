package agent

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user just ran a periodic investment simulation and is here primarily to understand
			its outcome: what was bought, how the value developed, how the strategy performed.

			Devise a plan of questions to ask each expert and come up with the best response to the user's request.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewResearcher creates the expert grounding answers in web search: recent
// news about the simulated securities, funds and markets.
func NewResearcher() *Expert {
	return &Expert{
		Name: "Researcher",
		Description: `This is an expert market researcher,
		very well aware of financial products and institutions and of
		the latest news about the different funds or companies.
		Ask the Researcher whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert in financial markets. You can search and find anything related to
			financial institutions, companies, markets, funds etc. You leverage Google Search to
			ground your assertions in a solid truth.
			You can get the latest news too, and you know how to relate them to the user's request.
				`}}},
		},
	}
}

// Report holds the rendered tables of one simulation run, the material the
// Analyst expert answers from.
type Report struct {
	Simulation   string
	Transactions string
	Development  string
	Performance  string
	Dividends    string
	Comparison   string
}

// NewAnalyst creates the expert in charge of one simulation's results. Its
// tools return the run's rendered tables.
func NewAnalyst(report Report) *Expert {
	lib := []Function{
		table("Simulation", "The run header: plan, resolved securities and warnings.", report.Simulation),
		table("Transactions", "Every executed buy order: date, symbol, shares, prices and invested capital.", report.Transactions),
		table("Development", "The day-by-day aggregated portfolio value, gain and return.", report.Development),
		table("Performance", "Gains over fixed trailing windows (1D, 1W, 1M, 6M, YTD, 1Y, 5Y, MAX).", report.Performance),
		table("Dividends", "Dividend income accrued from the shares held during the run.", report.Dividends),
		table("Comparison", "The lump-sum baseline and inflation-adjusted buying power of the same capital.", report.Comparison),
	}

	return &Expert{
		Name: "Analyst",
		Description: `This is the Analyst. It has the complete results of the user's investment
		simulation: the executed transactions, the value development, the performance windows,
		the dividend income and the strategy comparisons.
		Ask the Analyst anything about what the simulation actually produced.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are an analyst in charge of the user's investment simulation results.
				You know how to use the Tools to extract the relevant tables.
				You are part of a team of experts; yours is everything the simulation produced.
				They might ask you questions in approximate language, figure out what they meant.

				All monetary figures in the tables are in the simulation's base currency.
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a simple Function.
type Func struct {
	// Declare this function
	Decl *genai.FunctionDeclaration
	// Call this function
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

// table builds the Function returning one pre-rendered markdown table.
func table(name, description, content string) Function {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        name,
			Description: description,
			Parameters:  &genai.Schema{Type: genai.TypeObject},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted table.",
			},
		},
		Func: func(_ context.Context, id string, _ map[string]any) *genai.FunctionResponse {
			resp := map[string]any{"output": content}
			if content == "" {
				resp = map[string]any{"error": fmt.Sprintf("the %s table was not computed for this run", name)}
			}
			return &genai.FunctionResponse{ID: id, Name: name, Response: resp}
		},
	}
}
