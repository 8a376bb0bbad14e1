package gateway

import (
	"encoding/json"
	"fmt"

	"chaintask/internal/contract"
)

// queryResult is the body returned by the query endpoint. The gateway has
// already decoded the contract output against its metadata.
type queryResult struct {
	Method        string          `json:"method"`
	Output        json.RawMessage `json:"output"`
	IsError       bool            `json:"isError"`
	DecodedOutput string          `json:"decodedOutput"`
}

// Decode implements contract.Decoder.
func (c *Client) Decode(raw contract.RawResult, h *contract.Handle, method string) contract.Decoded {
	return Decode(raw, method)
}

// Decode parses a query result body. A body that cannot be parsed, or that
// answers a different method, decodes as an error.
func Decode(raw contract.RawResult, method string) contract.Decoded {
	var res queryResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return contract.Decoded{IsError: true, DecodedOutput: fmt.Sprintf("invalid query result: %v", err)}
	}
	if res.Method != "" && res.Method != method {
		return contract.Decoded{IsError: true, DecodedOutput: fmt.Sprintf("result is for %s, not %s", res.Method, method)}
	}
	return contract.Decoded{
		Output:        res.Output,
		IsError:       res.IsError,
		DecodedOutput: res.DecodedOutput,
	}
}
