package streamrecord

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// StreamKey identifies the stream a record belongs to.
type StreamKey = string

const autoGenerateIDString = "*"

// AutoGenerateID is the RecordID that lets the server assign the id when the record is added.
// It is the zero value of RecordID.
var AutoGenerateID = RecordID{}

// RecordID is the id of a stream entry in the format <millisecondsTime>-<sequenceNumber>.
type RecordID struct {
	raw       string
	timestamp uint64
	sequence  uint64
}

// ParseRecordID parses a stream entry id. A missing sequence part ("1526919030474") is read as sequence 0.
func ParseRecordID(id string) (RecordID, error) {
	if id == "" || id == autoGenerateIDString {
		return AutoGenerateID, nil
	}

	tsPart, seqPart, hasSeq := strings.Cut(id, "-")

	timestamp, err := strconv.ParseUint(tsPart, 10, 64)
	if err != nil {
		return RecordID{}, errors.Join(ErrInvalidRecordID, fmt.Errorf("%q: invalid timestamp part", id), err)
	}

	var sequence uint64
	if hasSeq {
		sequence, err = strconv.ParseUint(seqPart, 10, 64)
		if err != nil {
			return RecordID{}, errors.Join(ErrInvalidRecordID, fmt.Errorf("%q: invalid sequence part", id), err)
		}
	}

	return BuildRecordID(timestamp, sequence), nil
}

// BuildRecordID creates a RecordID from its two parts.
func BuildRecordID(timestamp uint64, sequence uint64) RecordID {
	return RecordID{
		raw:       strconv.FormatUint(timestamp, 10) + "-" + strconv.FormatUint(sequence, 10),
		timestamp: timestamp,
		sequence:  sequence,
	}
}

// ShouldBeAutoGenerated returns true if the server has to assign the id.
func (id RecordID) ShouldBeAutoGenerated() bool {
	return id.raw == ""
}

// Timestamp returns the millisecondsTime part, 0 for auto generated ids.
func (id RecordID) Timestamp() uint64 {
	return id.timestamp
}

// Sequence returns the sequenceNumber part, 0 for auto generated ids.
func (id RecordID) Sequence() uint64 {
	return id.sequence
}

func (id RecordID) String() string {
	if id.raw == "" {
		return autoGenerateIDString
	}

	return id.raw
}
