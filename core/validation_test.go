package core

import (
	"errors"
	"testing"
	"time"
)

func TestValidateDocument(t *testing.T) {
	tests := []struct {
		name    string
		doc     *Document
		wantErr error
	}{
		{
			name: "valid document",
			doc: &Document{
				Path: "/home/user/resume.pdf",
				Name: "resume.pdf",
			},
			wantErr: nil,
		},
		{
			name: "valid document without vectors",
			doc: &Document{
				Path:   "/home/user/resume.pdf",
				Sparse: nil,
				Dense:  nil,
			},
			wantErr: nil,
		},
		{
			name:    "nil document",
			doc:     nil,
			wantErr: ErrInvalidDocument,
		},
		{
			name:    "empty path",
			doc:     &Document{Name: "resume.pdf"},
			wantErr: ErrEmptyPath,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocument(tt.doc)

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateDocument() error = %v, want nil", err)
				}
				return
			}

			if err == nil {
				t.Errorf("ValidateDocument() error = nil, want %v", tt.wantErr)
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateDocument() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateHistoryEntry(t *testing.T) {
	validTime := time.Now().Add(-1 * time.Hour)
	futureTime := time.Now().Add(1 * time.Hour)

	tests := []struct {
		name    string
		entry   *HistoryEntry
		wantErr error
	}{
		{
			name: "valid entry",
			entry: &HistoryEntry{
				Path:       "/home/user/resume.pdf",
				Host:       "jobs.example.com",
				UploadedAt: validTime,
			},
			wantErr: nil,
		},
		{
			name:    "nil entry",
			entry:   nil,
			wantErr: ErrInvalidHistoryEntry,
		},
		{
			name: "empty path",
			entry: &HistoryEntry{
				Host:       "jobs.example.com",
				UploadedAt: validTime,
			},
			wantErr: ErrEmptyPath,
		},
		{
			name: "empty host",
			entry: &HistoryEntry{
				Path:       "/home/user/resume.pdf",
				UploadedAt: validTime,
			},
			wantErr: ErrEmptyHost,
		},
		{
			name: "future timestamp",
			entry: &HistoryEntry{
				Path:       "/home/user/resume.pdf",
				Host:       "jobs.example.com",
				UploadedAt: futureTime,
			},
			wantErr: ErrInvalidTimestamp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHistoryEntry(tt.entry)

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateHistoryEntry() error = %v, want nil", err)
				}
				return
			}

			if err == nil {
				t.Errorf("ValidateHistoryEntry() error = nil, want %v", tt.wantErr)
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateHistoryEntry() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateVocabularySnapshot(t *testing.T) {
	ok := &VocabularySnapshot{
		Terms: []string{"resume", "passport"},
		IDF:   []float64{1.0, 1.4},
	}
	if err := ValidateVocabularySnapshot(ok); err != nil {
		t.Errorf("ValidateVocabularySnapshot() error = %v, want nil", err)
	}

	if err := ValidateVocabularySnapshot(nil); err != nil {
		t.Errorf("ValidateVocabularySnapshot(nil) error = %v, want nil", err)
	}

	bad := &VocabularySnapshot{
		Terms: []string{"resume"},
		IDF:   []float64{1.0, 1.4},
	}
	if err := ValidateVocabularySnapshot(bad); !errors.Is(err, ErrSnapshotMismatch) {
		t.Errorf("ValidateVocabularySnapshot() error = %v, want ErrSnapshotMismatch", err)
	}
}
