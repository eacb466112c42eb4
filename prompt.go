package webinsight

import "fmt"

// BuildPrompt builds the LLM prompt for the given query type. Custom
// queries use the content as-is; the caller is expected to have framed it
// already. Unknown types fall back to a basic summary request.
func BuildPrompt(content string, queryType QueryType) string {
	switch queryType {
	case QuerySummary:
		return fmt.Sprintf(`Please provide a summary and key points for the following content.

Content:
%s

Summary (approximately 300 characters):
Key points (up to 5):
`, content)

	case QueryAnalysis:
		return fmt.Sprintf(`Please provide a detailed analysis of the following content. Include main information, reliability assessment, additional related information, and different perspectives.

Content:
%s

Analysis:
1. Summary of main information
2. Assessment of information reliability
3. Supplementary information (from web search)
4. Different perspectives or considerations
5. Related data or statistics (if available)
`, content)

	case QueryCustom:
		return content

	default:
		return fmt.Sprintf("Please summarize the following content:\n\n%s\n", content)
	}
}
