package panel

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/disersoft-code/traductor-pmv/internal/ntcip"
	"github.com/disersoft-code/traductor-pmv/internal/types"
)

const (
	scheduleTimeLayout = "2006/01/02 15:04"
	// maxDayPlanNumber bounds the day plan of a single entry lookup.
	maxDayPlanNumber = 32
)

// ScheduleID locates an entry across the time base, day plan and action
// tables. Its text form is "timeBase.dayPlan.event.action".
type ScheduleID struct {
	TimeBase int
	DayPlan  int
	Event    int
	Action   int
}

func ParseScheduleID(s string) (ScheduleID, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) != 4 {
		return ScheduleID{}, fmt.Errorf("schedule id %q: want 4 parts, got %d", s, len(parts))
	}
	var n [4]int
	for i, part := range parts {
		v, err := strconv.Atoi(part)
		if err != nil || v < 0 {
			return ScheduleID{}, fmt.Errorf("schedule id %q: bad part %q", s, part)
		}
		n[i] = v
	}
	return ScheduleID{TimeBase: n[0], DayPlan: n[1], Event: n[2], Action: n[3]}, nil
}

func (id ScheduleID) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", id.TimeBase, id.DayPlan, id.Event, id.Action)
}

// freeSchedule is where a new entry goes when time base slot i is unused.
func freeSchedule(i int) ScheduleID {
	return ScheduleID{TimeBase: i, DayPlan: i, Event: 1, Action: i}
}

// scheduleEntry is the raw content of one entry as read from the sign.
type scheduleEntry struct {
	id         ScheduleID
	recurrence ntcip.Recurrence
	dayPlan    int
	hour       int
	minute     int
	action     int
	memType    types.MemoryType
	message    int
}

func (e scheduleEntry) valid(maxDayPlans int) bool {
	return e.recurrence.Valid() &&
		e.dayPlan >= 1 && e.dayPlan <= maxDayPlans && e.dayPlan == e.id.DayPlan &&
		e.hour >= 0 && e.hour < 24 &&
		e.minute >= 0 && e.minute < 60 &&
		e.action > 0 && e.action == e.id.Action
}

func (p *Panel) GetSchedule(ctx context.Context, ip, id string) (*Schedule, error) {
	r, err := p.open("get schedule", ip)
	if err != nil {
		return nil, err
	}
	sid, err := ParseScheduleID(id)
	if err != nil {
		return nil, r.fail(InvalidModel, err)
	}

	e, err := r.readSchedule(ctx, sid)
	if err != nil {
		return nil, err
	}
	if !e.valid(maxDayPlanNumber) {
		return nil, r.fail(WrongScheduleId, fmt.Errorf("entry %s holds no valid schedule", sid))
	}
	return r.schedule(ctx, e), nil
}

// GetSchedules lists every valid entry and pages over the result.
func (p *Panel) GetSchedules(ctx context.Context, ip string, page, size int) (Page[*Schedule], error) {
	r, err := p.open("get schedules", ip)
	if err != nil {
		return Page[*Schedule]{}, err
	}

	vbs, err := r.get(ctx,
		ntcip.MaxTimeBaseEntries,
		ntcip.MaxDayPlans,
		ntcip.MaxDayPlanEvents,
		ntcip.NumActionEntries,
		ntcip.TimeBaseScheduleStatus,
		ntcip.DayPlanStatus,
	)
	if err != nil {
		return Page[*Schedule]{}, err
	}
	maxEntries, maxDayPlans := vbs[0].Int(), vbs[1].Int()
	r.log.Debug("Schedule capacity: %d entries, %d day plans, %d events, %d actions, schedule status %d, day plan status %d",
		maxEntries, maxDayPlans, vbs[2].Int(), vbs[3].Int(), vbs[4].Int(), vbs[5].Int())

	var list []*Schedule
	for i := 1; i <= maxEntries; i++ {
		month, err := r.getInt(ctx, ntcip.TimeBase(ntcip.TimeBaseMonth, i))
		if err != nil {
			return Page[*Schedule]{}, err
		}
		if ntcip.RecurrenceFromWire(month, 0, 0).IsZero() {
			continue
		}

		e, err := r.readSchedule(ctx, freeSchedule(i))
		if err != nil {
			return Page[*Schedule]{}, err
		}
		if !e.valid(maxDayPlans) || e.memType == 0 || e.message == 0 {
			r.log.Debug("Skipping schedule entry %d", i)
			continue
		}
		s := r.schedule(ctx, e)
		s.Index = len(list) + 1
		list = append(list, s)
	}

	return collect(page, size, len(list), func(i int) (*Schedule, error) {
		return list[i], nil
	})
}

// SetSchedule programs message to be displayed once at date (unix seconds)
// in the first unused entry.
func (p *Panel) SetSchedule(ctx context.Context, ip string, date int64, message int) error {
	r, err := p.open("set schedule", ip)
	if err != nil {
		return err
	}
	sid, err := r.nextFreeSchedule(ctx)
	if err != nil {
		return err
	}
	return r.writeSchedule(ctx, sid, date, message)
}

// UpdateSchedule reprograms entry id.
func (p *Panel) UpdateSchedule(ctx context.Context, ip, id string, date int64, message int) error {
	r, err := p.open("update schedule", ip)
	if err != nil {
		return err
	}
	sid, err := ParseScheduleID(id)
	if err != nil {
		return r.fail(InvalidModel, err)
	}
	return r.writeSchedule(ctx, sid, date, message)
}

func (p *Panel) DeleteSchedule(ctx context.Context, ip, id string) error {
	r, err := p.open("delete schedule", ip)
	if err != nil {
		return err
	}
	sid, err := ParseScheduleID(id)
	if err != nil {
		return r.fail(InvalidModel, err)
	}

	r.log.Debug("Clearing schedule %s", sid)
	err = r.set(ctx,
		ntcip.Octets(ntcip.ActionMsgCode(sid.Action), make([]byte, ntcip.ActionCodeLen)),
		ntcip.Int(ntcip.DayPlan(ntcip.DayPlanHour, sid.DayPlan, sid.Event), 0),
		ntcip.Int(ntcip.DayPlan(ntcip.DayPlanMinute, sid.DayPlan, sid.Event), 0),
		ntcip.ObjectID(ntcip.DayPlan(ntcip.DayPlanActionOID, sid.DayPlan, sid.Event), ntcip.ActionIndex(0)),
		ntcip.Int(ntcip.TimeBase(ntcip.TimeBaseDay, sid.TimeBase), 0),
		ntcip.Int(ntcip.TimeBase(ntcip.TimeBaseDate, sid.TimeBase), 0),
		ntcip.Int(ntcip.TimeBase(ntcip.TimeBaseMonth, sid.TimeBase), 0),
		ntcip.Int(ntcip.TimeBase(ntcip.TimeBaseDayPlan, sid.TimeBase), 0),
	)
	if err != nil {
		return err
	}
	r.log.Info("Schedule %s deleted", sid)
	return nil
}

func (r *request) nextFreeSchedule(ctx context.Context) (ScheduleID, error) {
	max, err := r.getInt(ctx, ntcip.MaxTimeBaseEntries)
	if err != nil {
		return ScheduleID{}, err
	}
	for i := 1; i <= max; i++ {
		month, err := r.getInt(ctx, ntcip.TimeBase(ntcip.TimeBaseMonth, i))
		if err != nil {
			return ScheduleID{}, err
		}
		if ntcip.RecurrenceFromWire(month, 0, 0).IsZero() {
			r.log.Debug("Time base entry %d is free", i)
			return freeSchedule(i), nil
		}
	}
	return ScheduleID{}, r.fail(LimitExceededScheduleItems, fmt.Errorf("all %d time base entries in use", max))
}

func (r *request) readSchedule(ctx context.Context, id ScheduleID) (scheduleEntry, error) {
	vbs, err := r.get(ctx,
		ntcip.TimeBase(ntcip.TimeBaseMonth, id.TimeBase),
		ntcip.TimeBase(ntcip.TimeBaseDate, id.TimeBase),
		ntcip.TimeBase(ntcip.TimeBaseDay, id.TimeBase),
		ntcip.TimeBase(ntcip.TimeBaseDayPlan, id.TimeBase),
		ntcip.DayPlan(ntcip.DayPlanHour, id.DayPlan, id.Event),
		ntcip.DayPlan(ntcip.DayPlanMinute, id.DayPlan, id.Event),
		ntcip.DayPlan(ntcip.DayPlanActionOID, id.DayPlan, id.Event),
		ntcip.ActionMsgCode(id.Action),
	)
	if err != nil {
		return scheduleEntry{}, err
	}

	e := scheduleEntry{
		id:         id,
		recurrence: ntcip.RecurrenceFromWire(vbs[0].Int(), vbs[1].Int(), vbs[2].Int()),
		dayPlan:    vbs[3].Int(),
		hour:       vbs[4].Int(),
		minute:     vbs[5].Int(),
	}
	if a, ok := ntcip.LastArc(vbs[6].String()); ok {
		e.action = a
	}
	mem, number, err := ntcip.ParseActionCode(vbs[7].Bytes())
	if err != nil {
		r.log.Warn("Schedule %s: %v", id, err)
	} else {
		e.memType, e.message = mem, number
	}
	r.log.Debug("Schedule %s: month %#x, date %#x, day %#x, day plan %d, %02d:%02d, action %d, message %d",
		id, e.recurrence.Month, e.recurrence.Date, e.recurrence.Day, e.dayPlan, e.hour, e.minute, e.action, e.message)
	return e, nil
}

// schedule renders a valid entry. The date falls in the current year in
// the sign's time zone. The linked message is attached when it can be read.
func (r *request) schedule(ctx context.Context, e scheduleEntry) *Schedule {
	month, day, _ := e.recurrence.MonthDay()
	at := time.Date(r.p.now().In(r.p.loc).Year(), month, day, e.hour, e.minute, 0, 0, r.p.loc)

	s := &Schedule{
		ID:                     fmt.Sprintf("%d.%d.%d.%d", e.id.TimeBase, e.dayPlan, e.id.Event, e.action),
		Date:                   at.Unix(),
		DateGMT:                at.UTC().Format(scheduleTimeLayout),
		LocalTime:              at.Format(scheduleTimeLayout),
		DayPlanNumber:          e.dayPlan,
		DayPlanEventNumber:     e.id.Event,
		MessageNumber:          e.message,
		ActionIndex:            e.action,
		TimeBaseScheduleNumber: e.id.TimeBase,
	}

	if e.message <= 0 {
		r.log.Warn("Schedule %s has no message", e.id)
		return s
	}
	msg, err := r.readMessage(ctx, changeable, e.message, false)
	if err != nil {
		r.log.Error("Failed to get message %d for schedule %s: %v", e.message, e.id, err)
		return s
	}
	s.MessageObject = msg
	s.Message = msg.Text
	return s
}

// writeSchedule points entry id at message and triggers it once at date,
// then hands display control to the schedule. Dates in the past are
// accepted.
func (r *request) writeSchedule(ctx context.Context, id ScheduleID, date int64, message int) error {
	if err := r.checkMessageID(ctx, message); err != nil {
		return err
	}
	at := time.Unix(date, 0).In(r.p.loc)
	r.log.Debug("Writing schedule %s for message %d at %s", id, message, at.Format(scheduleTimeLayout))

	vbs, err := r.get(ctx,
		ntcip.Message(ntcip.MessageMemoryType, changeable, message),
		ntcip.Message(ntcip.MessageNumber, changeable, message),
	)
	if err != nil {
		return err
	}
	code := ntcip.ActionCode(types.MemoryType(vbs[0].Int()), vbs[1].Int())

	month, day, weekday := ntcip.NewRecurrence(at).Wire()
	err = r.set(ctx,
		ntcip.Octets(ntcip.ActionMsgCode(id.Action), code),
		ntcip.Int(ntcip.DayPlan(ntcip.DayPlanHour, id.DayPlan, id.Event), at.Hour()),
		ntcip.Int(ntcip.DayPlan(ntcip.DayPlanMinute, id.DayPlan, id.Event), at.Minute()),
		ntcip.ObjectID(ntcip.DayPlan(ntcip.DayPlanActionOID, id.DayPlan, id.Event), ntcip.ActionIndex(id.Action)),
		ntcip.Int(ntcip.TimeBase(ntcip.TimeBaseDay, id.TimeBase), weekday),
		ntcip.Int(ntcip.TimeBase(ntcip.TimeBaseDate, id.TimeBase), day),
		ntcip.Int(ntcip.TimeBase(ntcip.TimeBaseMonth, id.TimeBase), month),
		ntcip.Int(ntcip.TimeBase(ntcip.TimeBaseDayPlan, id.TimeBase), id.DayPlan),
	)
	if err != nil {
		return err
	}

	r.log.Debug("Handing display control to the schedule")
	if err := r.set(ctx, ntcip.Octets(ntcip.ActivateMessage, ntcip.ScheduleActivationFrame(r.addr))); err != nil {
		return err
	}
	state, err := r.get(ctx, ntcip.ShortErrorStatus, ntcip.ActivateMessageState)
	if err != nil {
		return err
	}
	r.log.Debug("Schedule activated: short error status %d, activate state %d", state[0].Int(), state[1].Int())
	r.log.Info("Schedule %s saved for message %d", id, message)
	return nil
}
