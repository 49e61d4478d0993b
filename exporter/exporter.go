// Package exporter writes stored run records out as JSON Lines or CSV, one
// row per provider result, for consumers that want to pull history into a
// spreadsheet or another tool's ingest pipeline.
package exporter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/ipfan/store"
)

// ToJSONL writes one JSON line per record.
func ToJSONL(records []store.Record, w io.Writer) error {
	encoder := json.NewEncoder(w)
	for _, record := range records {
		if err := encoder.Encode(record); err != nil {
			return err
		}
	}
	return nil
}

// ToCSV flattens records to one row per provider result.
func ToCSV(records []store.Record, w io.Writer) error {
	writer := csv.NewWriter(w)
	header := []string{
		"run_id", "timestamp", "target", "provider", "success", "error",
		"ip", "asn_number", "isp", "country", "region", "city",
		"risk_score", "risk_tags",
	}
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, record := range records {
		target := ""
		if record.Target != nil {
			target = record.Target.String()
		}
		for _, r := range record.Results {
			row := []string{
				record.RunID,
				record.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
				target,
				r.Provider,
				strconv.FormatBool(r.Success),
			}
			if r.Success {
				row = append(row, "")
			} else {
				row = append(row, r.Err.Error())
			}
			if r.IP != nil {
				row = append(row, r.IP.String())
			} else {
				row = append(row, "")
			}
			if r.AutonomousSystem != nil {
				row = append(row, fmt.Sprintf("%d", r.AutonomousSystem.Number), r.AutonomousSystem.Name)
			} else {
				row = append(row, "", "")
			}
			if r.Region != nil {
				row = append(row, derefOr(r.Region.Country), derefOr(r.Region.Province), derefOr(r.Region.City))
			} else {
				row = append(row, "", "", "")
			}
			if r.Risk != nil {
				score := ""
				if r.Risk.Score != nil {
					score = strconv.Itoa(int(*r.Risk.Score))
				}
				tags := make([]string, 0, len(r.Risk.Tags))
				for _, t := range r.Risk.Tags {
					tags = append(tags, t.String())
				}
				row = append(row, score, strings.Join(tags, ";"))
			} else {
				row = append(row, "", "")
			}
			if err := writer.Write(row); err != nil {
				return err
			}
		}
	}
	writer.Flush()
	return writer.Error()
}

func derefOr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
