// Command extract pipes a raw model payload through the sanitizer and
// normalizer and prints the resulting draft. Useful for inspecting how a
// given model response would be coerced without running the full service.
//
//	echo '```json {"type":"Expense","amount":"5000"} ```' | go run ./cmd/extract
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ayethu/voiceledger/internal/pipeline"
)

func main() {
	raw, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading stdin: %v\n", err)
		os.Exit(1)
	}

	normalizer := pipeline.NewNormalizer()
	draft, degraded := normalizer.Normalize(pipeline.ExtractPayload(string(raw)))

	out, err := json.MarshalIndent(map[string]interface{}{
		"draft":    draft,
		"degraded": degraded,
	}, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "encoding draft: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(string(out))
}
