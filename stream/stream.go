// Package stream implements the pipe-delimited streaming encoder the GUI
// collaborator consumes: one flushed line per Result, 14 fields, fixed
// sentinel values standing in for absent IP/ASN.
package stream

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/example/ipfan/result"
)

const absentIP = "0.0.0.0"
const absentASN = "0"

// Encoder writes one pipe-delimited line per Result, flushing after each
// write so a consumer reading the stream live sees results as they land.
//
// Field order: provider | ip | success | error | asn_number | isp |
// country | region | city | time_zone | lat | lon | risk_score |
// risk_tags — exactly 14 fields, 13 separators, per line.
type Encoder struct {
	w *bufio.Writer
}

// NewEncoder wraps w for streaming output.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: bufio.NewWriter(w)}
}

// Encode writes one line for r and flushes immediately.
func (e *Encoder) Encode(r result.Result) error {
	if _, err := e.w.WriteString(strings.Join(fieldsFor(r), "|")); err != nil {
		return err
	}
	if _, err := e.w.WriteString("\n"); err != nil {
		return err
	}
	return e.w.Flush()
}

func fieldsFor(r result.Result) []string {
	provider := r.Provider

	ip := absentIP
	if r.IP != nil {
		ip = r.IP.String()
	}

	success := strconv.FormatBool(r.Success)
	errField := ""
	if !r.Success {
		errField = r.Err.StreamError()
	}

	asn := absentASN
	isp := ""
	if r.AutonomousSystem != nil {
		if r.AutonomousSystem.Number != 0 {
			asn = strconv.FormatUint(uint64(r.AutonomousSystem.Number), 10)
		}
		isp = r.AutonomousSystem.Name
	}

	var country, region, city, tz, lat, lon string
	if r.Region != nil {
		country = derefOr(r.Region.Country)
		region = derefOr(r.Region.Province)
		city = derefOr(r.Region.City)
		tz = derefOr(r.Region.TimeZone)
		if r.Region.Coordinates != nil {
			lat = r.Region.Coordinates.Lat
			lon = r.Region.Coordinates.Lon
		}
	}

	riskScore := ""
	riskTags := ""
	if r.Risk != nil {
		if r.Risk.Score != nil {
			riskScore = strconv.FormatUint(uint64(*r.Risk.Score), 10)
		}
		names := make([]string, 0, len(r.Risk.Tags))
		for _, t := range r.Risk.Tags {
			names = append(names, t.String())
		}
		riskTags = strings.Join(names, ",")
	}

	return []string{
		provider, ip, success, errField, asn, isp,
		country, region, city, tz, lat, lon,
		riskScore, riskTags,
	}
}

func derefOr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
