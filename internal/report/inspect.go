package report

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// Digest is a short summary of a saved JSON report.
type Digest struct {
	Name     string
	Seed     uint64
	Repeat   int
	Duration string
	Tests    []TestDigest
}

// TestDigest summarizes one test of a saved report.
type TestDigest struct {
	Label         string
	Description   string
	TotalElements int64
	SeqTimeMs     float64
	BestThreads   int
	BestSpeedup   float64
	Measured      int
	Skipped       int
	Failed        int
}

// LoadDigest reads a JSON report from path and summarizes it.
func LoadDigest(path string) (*Digest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}
	return Summarize(data)
}

// Summarize extracts the headline numbers from a JSON report without
// decoding it into the full report types.
func Summarize(data []byte) (*Digest, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("report is not valid JSON")
	}

	root := gjson.ParseBytes(data)
	if !root.Get("tests").IsArray() {
		return nil, fmt.Errorf("report has no tests array")
	}

	d := &Digest{
		Name:     root.Get("name").String(),
		Seed:     root.Get("seed").Uint(),
		Repeat:   int(root.Get("repeat").Int()),
		Duration: formatDuration(time.Duration(root.Get("duration").Int())),
	}

	root.Get("tests").ForEach(func(_, test gjson.Result) bool {
		td := TestDigest{
			Label:         test.Get("label").String(),
			Description:   test.Get("description").String(),
			TotalElements: test.Get("totalElements").Int(),
			SeqTimeMs:     float64(test.Get("baseline.mean").Int()) / 1e6,
		}
		test.Get("rows").ForEach(func(_, row gjson.Result) bool {
			switch row.Get("status").String() {
			case "ok":
				td.Measured++
				if s := row.Get("speedup").Float(); s > td.BestSpeedup {
					td.BestSpeedup = s
					td.BestThreads = int(row.Get("threads").Int())
				}
			case "skipped":
				td.Skipped++
			default:
				td.Failed++
			}
			return true
		})
		d.Tests = append(d.Tests, td)
		return true
	})

	return d, nil
}

// Query extracts a value from a JSON report using a JSONPath-like expression
// such as $.tests[0].rows[1].speedup.
func Query(data []byte, path string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty report")
	}
	if path == "" {
		return "", fmt.Errorf("empty query")
	}

	result := gjson.GetBytes(data, toGjsonPath(path))
	if !result.Exists() {
		return "", fmt.Errorf("path not found: %s", path)
	}
	if result.Type == gjson.Null {
		return "null", nil
	}
	return result.String(), nil
}

// toGjsonPath converts $.tests[0].label into tests.0.label.
func toGjsonPath(path string) string {
	path = strings.TrimPrefix(path, "$")
	path = strings.TrimPrefix(path, ".")
	if path == "" {
		return "@this"
	}

	path = strings.NewReplacer("['", ".", "']", "", "[\"", ".", "\"]", "", "[", ".", "]", "").Replace(path)
	return strings.TrimPrefix(path, ".")
}
