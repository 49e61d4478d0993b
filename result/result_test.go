package result

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorStreamErrorParseIPMatchesRequestLabel(t *testing.T) {
	e := Error{Tag: ParseIP, Message: "timeout"}
	assert.Equal(t, "Request: timeout", e.StreamError())
}

func TestErrorStreamErrorOtherTagsUseOwnName(t *testing.T) {
	e := Error{Tag: JsonParse, Message: "unexpected EOF"}
	assert.Equal(t, "JsonParse: unexpected EOF", e.StreamError())
}

func TestErrorErrorUsesOwnNameForParseIP(t *testing.T) {
	e := Error{Tag: ParseIP, Message: "bad format"}
	assert.Equal(t, "ParseIP: bad format", e.Error())
}

func TestRiskTagStringFallsBackToKindWhenNoLabel(t *testing.T) {
	rt := RiskTag{Kind: Hosting}
	assert.Equal(t, "Hosting", rt.String())
}

func TestRiskTagStringUsesLabelForOther(t *testing.T) {
	rt := RiskTag{Kind: Other, Label: "iCloud Relay"}
	assert.Equal(t, "iCloud Relay", rt.String())
}

func TestOkBuildsSuccessfulResult(t *testing.T) {
	addr := mustAddr("1.2.3.4")
	r := Ok("ip-api.com", addr)
	assert.True(t, r.Success)
	assert.Equal(t, None, r.Err.Tag)
	assert.NotNil(t, r.IP)
	assert.Equal(t, addr, *r.IP)
}

func TestFailBuildsFailedResult(t *testing.T) {
	r := Fail("ip-api.com", Request, "timeout")
	assert.False(t, r.Success)
	assert.Equal(t, Request, r.Err.Tag)
	assert.Nil(t, r.IP)
}
