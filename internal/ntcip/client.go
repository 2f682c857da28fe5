package ntcip

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/gosnmp/gosnmp"

	"github.com/disersoft-code/traductor-pmv/internal/config"
	"github.com/disersoft-code/traductor-pmv/internal/log"
)

// Transport failures. Every error returned by SNMPClient wraps one of these
// or is an unclassified failure.
var (
	ErrNoResponse = errors.New("ntcip: no response from agent")
	ErrAgentReply = errors.New("ntcip: error in agent reply")
	ErrNetwork    = errors.New("ntcip: network failure")
)

// ValueType is the SNMP syntax of a varbind value.
type ValueType int

const (
	Null ValueType = iota
	Integer
	OctetString
	ObjectIdentifier
)

type Varbind struct {
	OID   string
	Type  ValueType
	Value interface{}
}

func Int(oid string, v int) Varbind {
	return Varbind{OID: oid, Type: Integer, Value: v}
}

func Octets(oid string, v []byte) Varbind {
	return Varbind{OID: oid, Type: OctetString, Value: v}
}

func ObjectID(oid, value string) Varbind {
	return Varbind{OID: oid, Type: ObjectIdentifier, Value: value}
}

// Int returns the value as an integer. Octet strings holding decimal text
// are parsed; anything else yields 0.
func (v Varbind) Int() int {
	switch n := v.Value.(type) {
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	case uint:
		return int(n)
	case uint32:
		return int(n)
	case uint64:
		return int(n)
	case []byte:
		i, _ := strconv.Atoi(strings.TrimSpace(string(n)))
		return i
	case string:
		i, _ := strconv.Atoi(strings.TrimSpace(n))
		return i
	}
	return 0
}

func (v Varbind) Bytes() []byte {
	switch b := v.Value.(type) {
	case []byte:
		return b
	case string:
		return []byte(b)
	}
	return nil
}

func (v Varbind) String() string {
	switch s := v.Value.(type) {
	case []byte:
		return string(s)
	case string:
		return strings.TrimPrefix(s, ".")
	case nil:
		return ""
	}
	return fmt.Sprint(v.Value)
}

// Client performs one request/response round trip per call against the
// sign at ip. Results are returned in request order.
type Client interface {
	Get(ctx context.Context, ip string, oids ...string) ([]Varbind, error)
	Set(ctx context.Context, ip string, vbs ...Varbind) ([]Varbind, error)
}

// SNMPClient is the SNMPv1 Client backed by gosnmp. It keeps no connection
// between calls.
type SNMPClient struct {
	community string
	port      uint16
	timeout   time.Duration
	retries   int
	log       *log.Logger
}

func NewSNMPClient(cfg config.SNMPConfig, logger *log.Logger) *SNMPClient {
	return &SNMPClient{
		community: cfg.Community,
		port:      uint16(cfg.Port),
		timeout:   time.Duration(cfg.Timeout) * time.Millisecond,
		retries:   cfg.RetryCount(),
		log:       logger,
	}
}

func (c *SNMPClient) session(ctx context.Context, ip string) *gosnmp.GoSNMP {
	return &gosnmp.GoSNMP{
		Context:   ctx,
		Target:    ip,
		Port:      c.port,
		Community: c.community,
		Version:   gosnmp.Version1,
		Timeout:   c.timeout,
		Retries:   c.retries,
	}
}

func (c *SNMPClient) Get(ctx context.Context, ip string, oids ...string) ([]Varbind, error) {
	g := c.session(ctx, ip)
	if err := g.Connect(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer g.Conn.Close()

	c.log.Trace("SNMP get %s: %v", ip, oids)
	packet, err := g.Get(oids)
	if err != nil {
		return nil, classify(err)
	}
	return c.unpack(ip, packet)
}

func (c *SNMPClient) Set(ctx context.Context, ip string, vbs ...Varbind) ([]Varbind, error) {
	pdus := make([]gosnmp.SnmpPDU, 0, len(vbs))
	for _, vb := range vbs {
		pdu, err := toPDU(vb)
		if err != nil {
			return nil, err
		}
		pdus = append(pdus, pdu)
	}

	g := c.session(ctx, ip)
	if err := g.Connect(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer g.Conn.Close()

	c.log.Trace("SNMP set %s: %d varbinds", ip, len(pdus))
	packet, err := g.Set(pdus)
	if err != nil {
		return nil, classify(err)
	}
	return c.unpack(ip, packet)
}

func (c *SNMPClient) unpack(ip string, packet *gosnmp.SnmpPacket) ([]Varbind, error) {
	if packet == nil {
		return nil, ErrNoResponse
	}
	if packet.Error != gosnmp.NoError {
		c.log.Error("Error in SNMP reply from %s. Error %v index %d", ip, packet.Error, packet.ErrorIndex)
		return nil, fmt.Errorf("%w: status %v index %d", ErrAgentReply, packet.Error, packet.ErrorIndex)
	}

	out := make([]Varbind, 0, len(packet.Variables))
	for _, pdu := range packet.Variables {
		out = append(out, fromPDU(pdu))
	}
	return out, nil
}

func toPDU(vb Varbind) (gosnmp.SnmpPDU, error) {
	switch vb.Type {
	case Integer:
		return gosnmp.SnmpPDU{Name: vb.OID, Type: gosnmp.Integer, Value: vb.Int()}, nil
	case OctetString:
		return gosnmp.SnmpPDU{Name: vb.OID, Type: gosnmp.OctetString, Value: vb.Bytes()}, nil
	case ObjectIdentifier:
		return gosnmp.SnmpPDU{Name: vb.OID, Type: gosnmp.ObjectIdentifier, Value: vb.String()}, nil
	}
	return gosnmp.SnmpPDU{}, fmt.Errorf("cannot set %s: unsupported value type %d", vb.OID, vb.Type)
}

func fromPDU(pdu gosnmp.SnmpPDU) Varbind {
	vb := Varbind{OID: strings.TrimPrefix(pdu.Name, ".")}
	switch pdu.Type {
	case gosnmp.OctetString:
		vb.Type = OctetString
		vb.Value, _ = pdu.Value.([]byte)
	case gosnmp.ObjectIdentifier:
		vb.Type = ObjectIdentifier
		s, _ := pdu.Value.(string)
		vb.Value = strings.TrimPrefix(s, ".")
	case gosnmp.Integer, gosnmp.Counter32, gosnmp.Gauge32, gosnmp.TimeTicks, gosnmp.Counter64, gosnmp.Uinteger32:
		vb.Type = Integer
		vb.Value = int(gosnmp.ToBigInt(pdu.Value).Int64())
	default:
		vb.Type = Null
	}
	return vb
}

func classify(err error) error {
	var netErr net.Error
	switch {
	case errors.As(err, &netErr) && netErr.Timeout():
		return fmt.Errorf("%w: %v", ErrNoResponse, err)
	case strings.Contains(err.Error(), "timeout"):
		return fmt.Errorf("%w: %v", ErrNoResponse, err)
	case errors.As(err, &netErr):
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	return fmt.Errorf("snmp request failed: %w", err)
}
