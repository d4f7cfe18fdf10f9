package ai

import "strings"

// System roles pinned per call. The summary role is part of the contract:
// the summary text is returned to the caller verbatim.
const (
	summarySystemRole = "You are a Data Science Expert"
	columnSystemRole  = "You are an EDA Expert. Output ONLY valid JSON."
	pairSystemRole    = "You are an expert in data visualization. Output ONLY valid JSON."
)

const summaryPrompt = `Given the following dataset sample, provide a very short, concise summary.

Dataset sample:
{DATASET_SAMPLE}`

const columnPrompt = `Suggest visualizations for these columns based on metadata.
Options: "Bar Chart", "Pie Chart", "Histogram", "Box Plot", "Line Chart", "Scatter Plot", "No Visualization Needed".

Metadata:
{METADATA}

Return format:
{ "col_name": "Visualization Type" }`

const pairPrompt = `Suggest top 5 meaningful feature pairs for visualization.

Columns: {COLUMNS}
Summary: {SUMMARY}

Return format:
{
    "pair_1": ["feature_x", "feature_y", "Visualization Type"],
    "pair_2": ["feature_x", "feature_y", "Visualization Type"]
}
Options: Scatter Plot, Line Chart, Box Plot, Violin Plot, Stacked Bar Chart.`

// renderPrompt replaces {PLACEHOLDER} markers with values.
func renderPrompt(template string, replacements map[string]string) string {
	result := template
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, "{"+placeholder+"}", value)
	}
	return result
}
