package httpclient

import "testing"

func TestGetReturnsSameInstanceForSameBind(t *testing.T) {
	a := Get(Default)
	b := Get(Default)
	if a != b {
		t.Fatalf("Get(Default) returned distinct instances across calls")
	}
}

func TestGetReturnsDistinctInstancesAcrossBinds(t *testing.T) {
	v4 := Get(ForceV4)
	v6 := Get(ForceV6)
	if v4 == v6 {
		t.Fatalf("ForceV4 and ForceV6 share a client instance")
	}
}
