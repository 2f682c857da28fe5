package panel

import (
	"context"
	"fmt"
	"net"

	"github.com/disersoft-code/traductor-pmv/internal/log"
	"github.com/disersoft-code/traductor-pmv/internal/ntcip"
)

// request is one operation against one sign.
type request struct {
	p    *Panel
	op   string
	ip   string
	addr net.IP
	log  *log.Logger
}

func (p *Panel) open(op, ip string) (*request, error) {
	addr, err := ntcip.ParseIPv4(ip)
	if err != nil {
		p.log.Error("%s: invalid ip address %q", op, ip)
		return nil, newError(InvalidModel, op, err)
	}
	return &request{p: p, op: op, ip: ip, addr: addr, log: p.log.Sign(ip)}, nil
}

func (r *request) fail(kind Kind, err error) error {
	r.log.Error("%s failed with %s: %v", r.op, kind, err)
	return newError(kind, r.op, err)
}

func (r *request) get(ctx context.Context, oids ...string) ([]ntcip.Varbind, error) {
	vbs, err := r.p.client.Get(ctx, r.ip, oids...)
	if err != nil {
		return nil, r.fail(transportKind(err), err)
	}
	if len(vbs) != len(oids) {
		return nil, r.fail(ErrorInAgentReply, fmt.Errorf("asked for %d values, got %d", len(oids), len(vbs)))
	}
	return vbs, nil
}

func (r *request) getInt(ctx context.Context, oid string) (int, error) {
	vbs, err := r.get(ctx, oid)
	if err != nil {
		return 0, err
	}
	return vbs[0].Int(), nil
}

func (r *request) set(ctx context.Context, vbs ...ntcip.Varbind) error {
	resp, err := r.p.client.Set(ctx, r.ip, vbs...)
	if err != nil {
		return r.fail(transportKind(err), err)
	}
	for _, vb := range resp {
		r.log.Trace("Agent response %s: %v", vb.OID, vb.Value)
	}
	return nil
}

// checkRange fails with kind when id is outside 1..max, where max is read
// from the capacity parameter oid.
func (r *request) checkRange(ctx context.Context, oid string, id int, kind Kind) error {
	max, err := r.getInt(ctx, oid)
	if err != nil {
		return err
	}
	r.log.Debug("Capacity %d, requested %d", max, id)
	if id < 1 || id > max {
		return r.fail(kind, fmt.Errorf("id %d outside 1..%d", id, max))
	}
	return nil
}
