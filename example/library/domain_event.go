package library

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvents is a slice of DomainEvent instances.
type DomainEvents = []DomainEvent

// DomainEvent represents a business event that has occurred in the domain.
type DomainEvent interface {
	// IsEventType returns the string identifier for this event type.
	IsEventType() string

	// HasOccurredAt returns when this event occurred.
	HasOccurredAt() time.Time
}

// BookIDString represents a book identifier
type BookIDString = string

// ReaderIDString represents a reader identifier
type ReaderIDString = string

// OccurredAt represents when an event occurred
type OccurredAt = time.Time

// ToOccurredAt converts a time to OccurredAt with UTC normalization and microsecond precision
func ToOccurredAt(t time.Time) OccurredAt {
	return t.UTC().Truncate(time.Microsecond)
}

const (
	// BookCopyAddedToCirculationEventType is the event type identifier.
	BookCopyAddedToCirculationEventType = "BookCopyAddedToCirculation"

	// BookCopyLentToReaderEventType is the event type identifier.
	BookCopyLentToReaderEventType = "BookCopyLentToReader"

	// BookCopyReturnedByReaderEventType is the event type identifier.
	BookCopyReturnedByReaderEventType = "BookCopyReturnedByReader"

	// ReaderRegisteredEventType is the event type identifier.
	ReaderRegisteredEventType = "ReaderRegistered"
)

/***** BookCopyAddedToCirculation *****/

// BookCopyAddedToCirculation represents when a book copy is added to library circulation.
type BookCopyAddedToCirculation struct {
	BookID          BookIDString `hash:"bookId"`
	ISBN            string       `hash:"isbn"`
	Title           string       `hash:"title"`
	Authors         []string     `hash:"authors"`
	PublicationYear uint         `hash:"publicationYear"`
	OccurredAt      OccurredAt   `hash:"occurredAt"`
}

// BuildBookCopyAddedToCirculation creates a new BookCopyAddedToCirculation event.
func BuildBookCopyAddedToCirculation(
	bookID uuid.UUID,
	isbn string,
	title string,
	authors []string,
	publicationYear uint,
	occurredAt time.Time,
) BookCopyAddedToCirculation {

	return BookCopyAddedToCirculation{
		BookID:          bookID.String(),
		ISBN:            isbn,
		Title:           title,
		Authors:         authors,
		PublicationYear: publicationYear,
		OccurredAt:      ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e BookCopyAddedToCirculation) IsEventType() string {
	return BookCopyAddedToCirculationEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookCopyAddedToCirculation) HasOccurredAt() time.Time {
	return e.OccurredAt
}

/***** BookCopyLentToReader *****/

// BookCopyLentToReader represents when a book copy is lent to a reader.
type BookCopyLentToReader struct {
	BookID     BookIDString   `hash:"bookId"`
	ReaderID   ReaderIDString `hash:"readerId"`
	LoanPeriod time.Duration  `hash:"loanPeriod"`
	OccurredAt OccurredAt     `hash:"occurredAt"`
}

// BuildBookCopyLentToReader creates a new BookCopyLentToReader event.
func BuildBookCopyLentToReader(
	bookID uuid.UUID,
	readerID uuid.UUID,
	loanPeriod time.Duration,
	occurredAt time.Time,
) BookCopyLentToReader {

	return BookCopyLentToReader{
		BookID:     bookID.String(),
		ReaderID:   readerID.String(),
		LoanPeriod: loanPeriod,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e BookCopyLentToReader) IsEventType() string {
	return BookCopyLentToReaderEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookCopyLentToReader) HasOccurredAt() time.Time {
	return e.OccurredAt
}

/***** BookCopyReturnedByReader *****/

// BookCopyReturnedByReader represents when a book copy is returned by a reader.
type BookCopyReturnedByReader struct {
	BookID     BookIDString   `hash:"bookId"`
	ReaderID   ReaderIDString `hash:"readerId"`
	OccurredAt OccurredAt     `hash:"occurredAt"`
}

// BuildBookCopyReturnedByReader creates a new BookCopyReturnedByReader event.
func BuildBookCopyReturnedByReader(bookID uuid.UUID, readerID uuid.UUID, occurredAt time.Time) BookCopyReturnedByReader {
	return BookCopyReturnedByReader{
		BookID:     bookID.String(),
		ReaderID:   readerID.String(),
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e BookCopyReturnedByReader) IsEventType() string {
	return BookCopyReturnedByReaderEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookCopyReturnedByReader) HasOccurredAt() time.Time {
	return e.OccurredAt
}

/***** ReaderRegistered *****/

// ReaderRegistered represents when a new reader is registered in the library system.
type ReaderRegistered struct {
	ReaderID   ReaderIDString `hash:"readerId"`
	Name       string         `hash:"name"`
	OccurredAt OccurredAt     `hash:"occurredAt"`
}

// BuildReaderRegistered creates a new ReaderRegistered event.
func BuildReaderRegistered(readerID uuid.UUID, name string, occurredAt time.Time) ReaderRegistered {
	return ReaderRegistered{
		ReaderID:   readerID.String(),
		Name:       name,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e ReaderRegistered) IsEventType() string {
	return ReaderRegisteredEventType
}

// HasOccurredAt returns when this event occurred.
func (e ReaderRegistered) HasOccurredAt() time.Time {
	return e.OccurredAt
}
