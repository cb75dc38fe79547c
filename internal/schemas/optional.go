package schemas

import (
	"bytes"
	"encoding/json"
)

// Optional хранит значение поля частичного обновления и различает три состояния:
// поле отсутствует (Set == false), передан null (Set && Null) и передано значение.
type Optional[T any] struct {
	Value T
	Set   bool
	Null  bool
}

// Some возвращает заданное значение
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// UnmarshalJSON вызывается только для присутствующих ключей, в том числе для null
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.Value)
}

// MarshalJSON пишет null для отсутствующего или null-значения
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Ptr возвращает указатель на значение или nil, если оно не передано
func (o Optional[T]) Ptr() *T {
	if !o.Set || o.Null {
		return nil
	}
	v := o.Value
	return &v
}
