package diff

import (
	jsoniter "github.com/json-iterator/go"
)

// Summary of a comparison, for JSON output
type Summary struct {
	First        string        `json:"first"`
	Second       string        `json:"second"`
	CrossProject bool          `json:"crossProject,omitempty"`
	Differences  int           `json:"differences"`
	Pairs        []PairSummary `json:"pairs"`
}

// PairSummary describes a pair and its classification
type PairSummary struct {
	Key             string        `json:"key"`
	Status          string        `json:"status"`
	First           string        `json:"first,omitempty"`
	Second          string        `json:"second,omitempty"`
	ParentFirst     string        `json:"parentFirst,omitempty"`
	ParentSecond    string        `json:"parentSecond,omitempty"`
	FileDifferences int           `json:"fileDifferences"`
	Files           []FileSummary `json:"files,omitempty"`
}

// FileSummary describes a file that differs
type FileSummary struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	First  string `json:"first,omitempty"`
	Second string `json:"second,omitempty"`
}

// Summary of the report
func (r *Report) Summary() Summary {
	s := Summary{
		First:        r.First.FullName(),
		Second:       r.Second.FullName(),
		CrossProject: r.CrossProject,
		Differences:  r.Differences(),
		Pairs:        make([]PairSummary, 0, len(r.Results)),
	}
	for _, result := range r.Results {
		p := result.Pair
		ps := PairSummary{
			Key:             p.Key,
			Status:          result.Kind.String(),
			ParentFirst:     p.ParentFirst,
			ParentSecond:    p.ParentSecond,
			FileDifferences: len(result.Files),
		}
		if p.First != nil {
			ps.First = p.First.FullName()
		}
		if p.Second != nil {
			ps.Second = p.Second.FullName()
		}
		for _, f := range result.Files {
			fs := FileSummary{Name: f.Name, Status: f.Kind.String()}
			if f.First != nil {
				fs.First = f.First.Path()
			}
			if f.Second != nil {
				fs.Second = f.Second.Path()
			}
			ps.Files = append(ps.Files, fs)
		}
		s.Pairs = append(s.Pairs, ps)
	}
	return s
}

// JSON renders the summary as indented JSON
func (s Summary) JSON() ([]byte, error) {
	return jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(s, "", "  ")
}
