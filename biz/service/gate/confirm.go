package gate

import "time"

const keyArmedPrefix = "armed:"

// RowConfirm keeps per-row armed flags for two-click destructive actions. A flag expires after
// the confirm window, which clears rows the operator walked away from.
type RowConfirm struct {
	sess   SessionStore
	window time.Duration
	now    func() time.Time
}

func (r *RowConfirm) Armed(rowID string) bool {
	armedAt, ok := r.sess.Get(keyArmedPrefix + rowID).(int64)
	if !ok {
		return false
	}
	return r.now().Sub(time.Unix(armedAt, 0)) <= r.window
}

func (r *RowConfirm) Arm(rowID string) error {
	r.sess.Set(keyArmedPrefix+rowID, r.now().Unix())
	return r.sess.Save()
}

func (r *RowConfirm) Disarm(rowID string) error {
	r.sess.Delete(keyArmedPrefix + rowID)
	return r.sess.Save()
}
