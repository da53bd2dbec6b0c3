package events

import "github.com/atomfield/reelcode/internal/logging"

type UITracer struct{}

type FilterTracer struct{}

type ActionTracer struct{}

type CommandTracer struct{}

type PaletteTracer struct{}

type RecentTracer struct{}

var (
	UI      = UITracer{}
	Filter  = FilterTracer{}
	Action  = ActionTracer{}
	Command = CommandTracer{}
	Palette = PaletteTracer{}
	Recent  = RecentTracer{}
)

func (UITracer) PickerEnter(pickerID, itemID, label, filter string) {
	logging.Trace("picker.enter", map[string]interface{}{
		"picker": pickerID,
		"item":   itemID,
		"label":  label,
		"filter": filter,
	})
}

func (UITracer) PickerCursor(pickerID string, cursor int) {
	logging.Trace("picker.cursor", map[string]interface{}{"picker": pickerID, "cursor": cursor})
}

func (UITracer) Submit(text string) {
	logging.Trace("ui.submit", map[string]interface{}{"text": text})
}

func (ActionTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"error": err.Error()})
}

func (ActionTracer) Success(info string) {
	logging.Trace("action.success", map[string]interface{}{"info": info})
}

func (FilterTracer) Cleared(pickerID string) {
	logging.Trace("filter.clear", map[string]interface{}{"picker": pickerID})
}

func (FilterTracer) WordBackspace(pickerID, filter string) {
	logging.Trace("filter.word-backspace", map[string]interface{}{"picker": pickerID, "filter": filter})
}

func (FilterTracer) Cursor(pickerID string, pos int) {
	logging.Trace("filter.cursor", map[string]interface{}{"picker": pickerID, "cursor": pos})
}

func (FilterTracer) Append(pickerID, filter string) {
	logging.Trace("filter.append", map[string]interface{}{"picker": pickerID, "filter": filter})
}

func (FilterTracer) Backspace(pickerID, filter string) {
	logging.Trace("filter.backspace", map[string]interface{}{"picker": pickerID, "filter": filter})
}

func (CommandTracer) Queue(name, arg string) {
	logging.Trace("command.queue", map[string]interface{}{"name": name, "arg": arg})
}

func (CommandTracer) Skip(name, arg string) {
	logging.Trace("command.skip", map[string]interface{}{"name": name, "arg": arg})
}

func (CommandTracer) NoOp(name, arg string) {
	logging.Trace("command.noop", map[string]interface{}{"name": name, "arg": arg})
}

func (CommandTracer) Result(name, arg, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"name": name, "arg": arg, "msg": msgType})
}

func (PaletteTracer) Parse(name, arg string, explicit bool) {
	logging.Trace("palette.parse", map[string]interface{}{"name": name, "arg": arg, "explicit": explicit})
}

func (PaletteTracer) Unknown(name string) {
	logging.Trace("palette.unknown", map[string]interface{}{"name": name})
}

func (PaletteTracer) Suggest(query string, count int, argument bool) {
	logging.Trace("palette.suggest", map[string]interface{}{"query": query, "count": count, "argument": argument})
}

func (RecentTracer) Trimmed(list string, dropped int) {
	logging.Trace("recent.trimmed", map[string]interface{}{"list": list, "dropped": dropped})
}

func (RecentTracer) Upsert(list, key string) {
	logging.Trace("recent.upsert", map[string]interface{}{"list": list, "key": key})
}
