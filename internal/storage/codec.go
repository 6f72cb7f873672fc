package storage

import (
	"encoding/json"
	"log"
	"reflect"
)

// LoadCollection decodes the JSON collection stored under key into dst.
//
// Missing, unreadable or corrupt data leaves dst untouched and returns
// false; the fault is logged, never returned. Callers pre-fill dst with
// their empty default. The document is decoded into a fresh value first,
// so a partially decoded collection never reaches dst.
func LoadCollection(s Storage, key string, dst any) bool {
	if s == nil {
		return false
	}

	data, err := s.Get(key)
	if err != nil {
		log.Printf("Warning: failed to load %s: %v", key, err)
		return false
	}
	if len(data) == 0 {
		return false
	}

	target := reflect.ValueOf(dst)
	if target.Kind() != reflect.Pointer || target.IsNil() {
		log.Printf("Warning: cannot decode %s into %T", key, dst)
		return false
	}

	fresh := reflect.New(target.Elem().Type())
	if err := json.Unmarshal(data, fresh.Interface()); err != nil {
		log.Printf("Warning: corrupt %s collection, using empty: %v", key, err)
		return false
	}

	target.Elem().Set(fresh.Elem())
	return true
}

// SaveCollection rewrites the whole collection stored under key.
// Failures are logged and reported as false.
func SaveCollection(s Storage, key string, v any) bool {
	if s == nil {
		return false
	}

	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("Warning: failed to encode %s: %v", key, err)
		return false
	}

	if err := s.Put(key, data); err != nil {
		log.Printf("Warning: failed to save %s: %v", key, err)
		return false
	}

	return true
}
