package filehandler

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/philipp01105/envlog/core"
	"github.com/philipp01105/envlog/formatter"
)

// backupLayout sorts lexically in time order
const backupLayout = "2006-01-02T15-04-05.000000000"

// FileConfig holds configuration for file handler
type FileConfig struct {
	// Filename is the path to the log file
	Filename string
	// Formatter to use (default: JSONFormatter with process bindings)
	Formatter formatter.Formatter
	// MaxSize is the maximum size in bytes before rotation (0 = no rotation)
	MaxSize int64
	// MaxBackups is the maximum number of old log files to retain (0 = keep all)
	MaxBackups int
}

// FileHandler appends formatted records to a file and rotates it by size
type FileHandler struct {
	filename    string
	formatter   formatter.Formatter
	maxSize     int64
	maxBackups  int
	mu          sync.Mutex
	file        *os.File
	closed      bool
	currentSize int64
	now         func() time.Time
}

// NewFileHandler opens (or creates) the file and its directory.
func NewFileHandler(cfg FileConfig) (*FileHandler, error) {
	if cfg.Filename == "" {
		return nil, errors.New("filename is required")
	}
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.NewJSONFormatter(formatter.Config{}, formatter.ProcessBindings())
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Filename), 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	file, size, err := openLogFile(cfg.Filename)
	if err != nil {
		return nil, err
	}

	return &FileHandler{
		filename:    cfg.Filename,
		formatter:   cfg.Formatter,
		maxSize:     cfg.MaxSize,
		maxBackups:  cfg.MaxBackups,
		file:        file,
		currentSize: size,
		now:         time.Now,
	}, nil
}

func openLogFile(name string) (*os.File, int64, error) {
	file, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, 0, fmt.Errorf("open log file: %w", err)
	}
	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, 0, fmt.Errorf("stat log file: %w", err)
	}
	return file, info.Size(), nil
}

// Handle formats the entry outside the lock and appends it as one write.
func (h *FileHandler) Handle(entry *core.Entry) error {
	data, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return os.ErrClosed
	}
	if h.file == nil {
		// A failed reopen after rotation is retried on every write
		file, size, err := openLogFile(h.filename)
		if err != nil {
			return err
		}
		h.file = file
		h.currentSize = size
	}
	if h.maxSize > 0 && h.currentSize > 0 && h.currentSize+int64(len(data)) > h.maxSize {
		if err := h.rotate(); err != nil {
			return err
		}
	}

	n, err := h.file.Write(data)
	h.currentSize += int64(n)
	return err
}

// rotate renames the current file with a timestamp suffix and reopens
// the original name. Caller holds mu.
func (h *FileHandler) rotate() error {
	if err := h.file.Close(); err != nil {
		return err
	}

	rotatedName := h.filename + "." + h.now().Format(backupLayout)
	renameErr := os.Rename(h.filename, rotatedName)

	file, size, err := openLogFile(h.filename)
	if err != nil {
		h.file = nil
		if renameErr != nil {
			return fmt.Errorf("rotation failed: %v, reopen failed: %w", renameErr, err)
		}
		return err
	}
	h.file = file
	h.currentSize = size
	if renameErr != nil {
		return renameErr
	}

	if h.maxBackups > 0 {
		h.cleanupOldBackups()
	}
	return nil
}

// Backups returns the rotated files, oldest first.
func (h *FileHandler) Backups() ([]string, error) {
	matches, err := filepath.Glob(h.filename + ".*")
	if err != nil {
		return nil, err
	}
	base := filepath.Base(h.filename) + "."
	backups := matches[:0]
	for _, match := range matches {
		suffix := strings.TrimPrefix(filepath.Base(match), base)
		if _, err := time.Parse(backupLayout, suffix); err == nil {
			backups = append(backups, match)
		}
	}
	sort.Strings(backups)
	return backups, nil
}

// cleanupOldBackups removes the oldest backups beyond maxBackups
func (h *FileHandler) cleanupOldBackups() {
	backups, err := h.Backups()
	if err != nil || len(backups) <= h.maxBackups {
		return
	}
	for _, file := range backups[:len(backups)-h.maxBackups] {
		if err := os.Remove(file); err != nil {
			return
		}
	}
}

// Close syncs and closes the file
func (h *FileHandler) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil
	}
	h.closed = true
	if h.file == nil {
		return nil
	}
	syncErr := h.file.Sync()
	closeErr := h.file.Close()
	h.file = nil
	if syncErr != nil {
		return syncErr
	}
	return closeErr
}
