package util

import (
	"testing"
)

func TestNil(t *testing.T) {
	_, err := NewOrderedMap(nil, nil)
	if err != nil {
		t.Error(err)
		return
	}
	_, err = NewOrderedMap(nil, map[string]any{})
	if err != nil {
		t.Error(err)
		return
	}
	_, err = NewOrderedMap([]string{}, nil)
	if err != nil {
		t.Error(err)
		return
	}
}

func TestMismatchedLength(t *testing.T) {
	_, err := NewOrderedMap([]string{"a", "b"},
		map[string]any{"a": nil})
	if err != ErrorKeysDontMatchValues {
		t.Error("Should have returned an error")
		return
	}
}

func TestMismatchedKeys(t *testing.T) {
	_, err := NewOrderedMap([]string{"a", "b"},
		map[string]any{"a": nil, "c": nil})
	if err != ErrorKeysDontMatchValues {
		t.Error("Should have returned an error")
		return
	}
}

func TestOrder(t *testing.T) {
	myMap := map[string]any{"a": nil, "b": nil, "c": nil}
	om, err := NewOrderedMap([]string{"c", "b", "a"}, myMap)
	if err != nil {
		t.Error(err)
		return
	}
	keys := om.Keys()
	if keys[0] != "c" || keys[1] != "b" || keys[2] != "a" {
		t.Error("Incorrect key order:", keys)
	}
}

func TestGet(t *testing.T) {
	om, err := NewOrderedMap([]string{"a"}, map[string]any{"a": 1})
	if err != nil {
		t.Error(err)
		return
	}
	val, has := om.Get("a")
	if !has {
		t.Error("Did not find expected key")
		return
	}
	if val.(int) != 1 {
		t.Error("Did not get expected value back")
		return
	}
	_, has = om.Get("b")
	if has {
		t.Error("Found a key that was never added")
	}
}
