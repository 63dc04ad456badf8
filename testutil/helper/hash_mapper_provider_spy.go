package helper

import (
	"reflect"
	"sync"

	"github.com/AntonStoeckl/stream-record-mapper-go/streamrecord"
)

// HashMapperProviderSpy is a streamrecord.HashMapperProvider that returns a fixed HashMapper or error
// and records every requested target type.
type HashMapperProviderSpy[HK any, HV any] struct {
	mapper         streamrecord.HashMapper[HK, HV]
	err            error
	requestedTypes []reflect.Type
	mu             sync.Mutex
}

// NewHashMapperProviderSpy creates a spy that resolves mapper for every target type.
func NewHashMapperProviderSpy[HK any, HV any](mapper streamrecord.HashMapper[HK, HV]) *HashMapperProviderSpy[HK, HV] {
	return &HashMapperProviderSpy[HK, HV]{mapper: mapper}
}

// NewFailingHashMapperProviderSpy creates a spy that fails every resolution with err.
func NewFailingHashMapperProviderSpy[HK any, HV any](err error) *HashMapperProviderSpy[HK, HV] {
	return &HashMapperProviderSpy[HK, HV]{err: err}
}

// HashMapperFor implements streamrecord.HashMapperProvider.
func (s *HashMapperProviderSpy[HK, HV]) HashMapperFor(targetType reflect.Type) (streamrecord.HashMapper[HK, HV], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.requestedTypes = append(s.requestedTypes, targetType)

	if s.err != nil {
		return nil, s.err
	}

	return s.mapper, nil
}

// CallCount returns how often HashMapperFor was called.
func (s *HashMapperProviderSpy[HK, HV]) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.requestedTypes)
}

// RequestedTypes returns a copy of the target types in the order they were requested.
func (s *HashMapperProviderSpy[HK, HV]) RequestedTypes() []reflect.Type {
	s.mu.Lock()
	defer s.mu.Unlock()

	types := make([]reflect.Type, len(s.requestedTypes))
	copy(types, s.requestedTypes)

	return types
}
