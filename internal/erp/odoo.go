// Package erp integrates with an Odoo ERP over XML-RPC, limited to
// partner (res.partner) management: search by email, create, update.
// Calls go through execute_kw on the /xmlrpc/2/object endpoint and every
// operation returns the same envelope so callers never have to branch on
// transport details. This is a stub integration: no live Odoo server is
// required for the rest of the system to function.
package erp

import (
	"fmt"

	"github.com/kolo/xmlrpc"

	"go-commerce-gql/internal/config"
)

const partnerModel = "res.partner"

// Partner mirrors the res.partner fields this system cares about. VAT is
// the fiscal identification number.
type Partner struct {
	ID     int64  `xmlrpc:"id"`
	Name   string `xmlrpc:"name"`
	Email  string `xmlrpc:"email"`
	VAT    string `xmlrpc:"vat"`
	Street string `xmlrpc:"street"`
	Phone  string `xmlrpc:"phone"`
}

// Response is the uniform call envelope: Success with Data, or an Error
// string. Remote failures never escape as raw errors.
type Response[T any] struct {
	Success bool
	Data    T
	Error   string
}

// PartnerClient is the partner directory surface the rest of the system
// depends on.
type PartnerClient interface {
	FindPartnerByEmail(email string) Response[[]Partner]
	CreatePartner(partner Partner) Response[int64]
	UpdatePartner(id int64, fields map[string]interface{}) Response[bool]
}

// caller abstracts the XML-RPC transport so tests can stub it.
type caller interface {
	Call(serviceMethod string, args interface{}, reply interface{}) error
}

type Client struct {
	rpc      caller
	db       string
	uid      int
	password string
}

func NewClient(cfg config.Odoo) (*Client, error) {
	rpc, err := xmlrpc.NewClient(fmt.Sprintf("%s/xmlrpc/2/object", cfg.URL), nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		rpc:      rpc,
		db:       cfg.DB,
		uid:      cfg.UID,
		password: cfg.Password,
	}, nil
}

func (c *Client) execArgs(method string, params ...interface{}) []interface{} {
	args := []interface{}{c.db, c.uid, c.password, partnerModel, method}
	return append(args, params...)
}

// FindPartnerByEmail runs a search_read on res.partner with an exact
// email match.
func (c *Client) FindPartnerByEmail(email string) Response[[]Partner] {
	domain := []interface{}{[]interface{}{[]interface{}{"email", "=", email}}}
	fields := map[string]interface{}{
		"fields": []string{"name", "vat", "email", "street", "phone"},
	}

	var partners []Partner
	err := c.rpc.Call("execute_kw", c.execArgs("search_read", domain, fields), &partners)
	if err != nil {
		return Response[[]Partner]{Error: err.Error()}
	}
	return Response[[]Partner]{Success: true, Data: partners}
}

// CreatePartner creates a res.partner record and returns its Odoo id.
func (c *Client) CreatePartner(partner Partner) Response[int64] {
	record := map[string]interface{}{
		"name":  partner.Name,
		"email": partner.Email,
	}
	if partner.VAT != "" {
		record["vat"] = partner.VAT
	}
	if partner.Street != "" {
		record["street"] = partner.Street
	}
	if partner.Phone != "" {
		record["phone"] = partner.Phone
	}

	var id int64
	err := c.rpc.Call("execute_kw", c.execArgs("create", []interface{}{record}), &id)
	if err != nil {
		return Response[int64]{Error: err.Error()}
	}
	return Response[int64]{Success: true, Data: id}
}

// UpdatePartner writes the given fields onto an existing partner. Only
// the fields present in the map are touched.
func (c *Client) UpdatePartner(id int64, fields map[string]interface{}) Response[bool] {
	var ok bool
	err := c.rpc.Call("execute_kw", c.execArgs("write", []interface{}{[]int64{id}, fields}), &ok)
	if err != nil {
		return Response[bool]{Error: err.Error()}
	}
	return Response[bool]{Success: true, Data: true}
}
