package panel

import (
	"context"
	"sync"
	"time"

	"github.com/disersoft-code/traductor-pmv/internal/log"
	"github.com/disersoft-code/traductor-pmv/internal/ntcip"
	"github.com/disersoft-code/traductor-pmv/internal/types"
)

const testIP = "10.0.0.7"

// fakeClient is a sign whose parameters live in a map. Values are int,
// []byte or, for object identifiers, string. Sets are written back so
// later reads observe them.
type fakeClient struct {
	mu     sync.Mutex
	values map[string]interface{}
	getErr error
	setErr error
	gets   [][]string
	sets   [][]ntcip.Varbind
}

func newFake() *fakeClient {
	return &fakeClient{values: map[string]interface{}{
		ntcip.MaxChangeableMessages: 10,
		ntcip.ValidateMessageError:  2,
	}}
}

func (f *fakeClient) Get(_ context.Context, _ string, oids ...string) ([]ntcip.Varbind, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets = append(f.gets, oids)
	if f.getErr != nil {
		return nil, f.getErr
	}
	out := make([]ntcip.Varbind, len(oids))
	for i, oid := range oids {
		switch v := f.values[oid].(type) {
		case int:
			out[i] = ntcip.Int(oid, v)
		case []byte:
			out[i] = ntcip.Octets(oid, v)
		case string:
			out[i] = ntcip.ObjectID(oid, v)
		default:
			out[i] = ntcip.Varbind{OID: oid}
		}
	}
	return out, nil
}

func (f *fakeClient) Set(_ context.Context, _ string, vbs ...ntcip.Varbind) ([]ntcip.Varbind, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sets = append(f.sets, vbs)
	if f.setErr != nil {
		return nil, f.setErr
	}
	for _, vb := range vbs {
		f.values[vb.OID] = vb.Value
	}
	return vbs, nil
}

// fetched reports whether any Get asked for oid.
func (f *fakeClient) fetched(oid string) bool {
	for _, req := range f.gets {
		for _, o := range req {
			if o == oid {
				return true
			}
		}
	}
	return false
}

func (f *fakeClient) message(mem types.MemoryType, n int, multiString, owner string, crc int) {
	f.values[ntcip.Message(ntcip.MessageMemoryType, mem, n)] = mem.Wire()
	f.values[ntcip.Message(ntcip.MessageNumber, mem, n)] = n
	f.values[ntcip.Message(ntcip.MessageMulti, mem, n)] = []byte(multiString)
	f.values[ntcip.Message(ntcip.MessageOwner, mem, n)] = []byte(owner)
	f.values[ntcip.Message(ntcip.MessageCRC, mem, n)] = crc
	f.values[ntcip.Message(ntcip.MessageStatus, mem, n)] = types.MessageStatusValid.Wire()
}

// schedule stores entry (i, i, 1, i) firing at t for changeable message msg.
func (f *fakeClient) schedule(i int, t time.Time, msg int) {
	month, date, day := ntcip.NewRecurrence(t).Wire()
	f.values[ntcip.TimeBase(ntcip.TimeBaseMonth, i)] = month
	f.values[ntcip.TimeBase(ntcip.TimeBaseDate, i)] = date
	f.values[ntcip.TimeBase(ntcip.TimeBaseDay, i)] = day
	f.values[ntcip.TimeBase(ntcip.TimeBaseDayPlan, i)] = i
	f.values[ntcip.DayPlan(ntcip.DayPlanHour, i, 1)] = t.Hour()
	f.values[ntcip.DayPlan(ntcip.DayPlanMinute, i, 1)] = t.Minute()
	f.values[ntcip.DayPlan(ntcip.DayPlanActionOID, i, 1)] = ntcip.ActionIndex(i)
	f.values[ntcip.ActionMsgCode(i)] = ntcip.ActionCode(types.MemoryTypeChangeable, msg)
}

var testZone = time.FixedZone("COT", -5*3600)

func newTestPanel(f *fakeClient) *Panel {
	p := NewPanel(f, log.Discard(), testZone)
	p.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, testZone) }
	return p
}
