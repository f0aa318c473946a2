package erp

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRPC stands in for the XML-RPC transport, capturing the call and
// feeding back a canned reply.
type fakeRPC struct {
	method string
	args   []interface{}
	reply  func(reply interface{})
	err    error
}

func (f *fakeRPC) Call(serviceMethod string, args interface{}, reply interface{}) error {
	f.method = serviceMethod
	f.args = args.([]interface{})
	if f.err != nil {
		return f.err
	}
	if f.reply != nil {
		f.reply(reply)
	}
	return nil
}

func newTestClient(rpc *fakeRPC) *Client {
	return &Client{rpc: rpc, db: "erp", uid: 2, password: "secret"}
}

func TestFindPartnerByEmail(t *testing.T) {
	rpc := &fakeRPC{reply: func(reply interface{}) {
		*(reply.(*[]Partner)) = []Partner{{ID: 42, Name: "Ana", Email: "ana@x.com"}}
	}}
	client := newTestClient(rpc)

	res := client.FindPartnerByEmail("ana@x.com")
	require.True(t, res.Success)
	require.Len(t, res.Data, 1)
	assert.EqualValues(t, 42, res.Data[0].ID)

	assert.Equal(t, "execute_kw", rpc.method)
	// db, uid, password, model, method, then the call parameters.
	assert.Equal(t, "erp", rpc.args[0])
	assert.Equal(t, 2, rpc.args[1])
	assert.Equal(t, "secret", rpc.args[2])
	assert.Equal(t, "res.partner", rpc.args[3])
	assert.Equal(t, "search_read", rpc.args[4])
}

func TestFindPartnerByEmailError(t *testing.T) {
	rpc := &fakeRPC{err: errors.New("connection refused")}
	client := newTestClient(rpc)

	res := client.FindPartnerByEmail("ana@x.com")
	assert.False(t, res.Success)
	assert.Equal(t, "connection refused", res.Error)
	assert.Empty(t, res.Data)
}

func TestCreatePartner(t *testing.T) {
	rpc := &fakeRPC{reply: func(reply interface{}) {
		*(reply.(*int64)) = 77
	}}
	client := newTestClient(rpc)

	res := client.CreatePartner(Partner{Name: "Ana", Email: "ana@x.com", Phone: "999888777"})
	require.True(t, res.Success)
	assert.EqualValues(t, 77, res.Data)

	assert.Equal(t, "create", rpc.args[4])
	record := rpc.args[5].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "Ana", record["name"])
	assert.Equal(t, "999888777", record["phone"])
	_, hasVAT := record["vat"]
	assert.False(t, hasVAT, "empty optional fields are not sent")
}

func TestUpdatePartner(t *testing.T) {
	rpc := &fakeRPC{reply: func(reply interface{}) {
		*(reply.(*bool)) = true
	}}
	client := newTestClient(rpc)

	res := client.UpdatePartner(42, map[string]interface{}{"name": "Ana T."})
	require.True(t, res.Success)
	assert.True(t, res.Data)

	assert.Equal(t, "write", rpc.args[4])
	params := rpc.args[5].([]interface{})
	assert.Equal(t, []int64{42}, params[0])
}

func TestUpdatePartnerError(t *testing.T) {
	rpc := &fakeRPC{err: errors.New("access denied")}
	client := newTestClient(rpc)

	res := client.UpdatePartner(42, map[string]interface{}{"name": "x"})
	assert.False(t, res.Success)
	assert.Equal(t, "access denied", res.Error)
}
