package logging

import "time"

func String(key, value string) Field          { return Field{Key: key, Value: value} }
func Int(key string, value int) Field         { return Field{Key: key, Value: value} }
func Float64(key string, value float64) Field { return Field{Key: key, Value: value} }
func Bool(key string, value bool) Field       { return Field{Key: key, Value: value} }
func Any(key string, value any) Field         { return Field{Key: key, Value: value} }

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

func Component(name string) Field   { return String("component", name) }
func Latency(d time.Duration) Field { return Duration("latency", d) }
func Count(n int) Field             { return Int("count", n) }
func Path(p string) Field           { return String("path", p) }

// Build fields

func Model(name string) Field  { return String("model", name) }
func Node(id string) Field     { return String("node", id) }
func Source(kind string) Field { return String("source", kind) }
func Pipes(n int) Field        { return Int("pipes", n) }
func BuildID(id string) Field  { return String("build_id", id) }
func Instances(n int) Field    { return Int("instances", n) }
func Connections(n int) Field  { return Int("connections", n) }
func Sequence(seq []int) Field { return Any("sequence", append([]int(nil), seq...)) }
