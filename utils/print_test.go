// Copyright 2026 Sonic Labs
// This file is part of Tailgen Tail-Dependent Sampler
//
// Tailgen is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Tailgen is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Tailgen. If not, see <http://www.gnu.org/licenses/>.

package utils

import (
	"bytes"
	"database/sql"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestPrinters_AddPrinter(t *testing.T) {
	p := NewPrinters()
	p.AddPrinter(&PrinterToWriter{}).AddPrinter(&PrinterToWriter{})
	assert.Equal(t, 2, p.Len())
}

func TestPrinters_PrintStopsAtFirstError(t *testing.T) {
	ctrl := gomock.NewController(t)

	first := NewMockPrinter(ctrl)
	second := NewMockPrinter(ctrl)
	p := NewPrinters().AddPrinter(first).AddPrinter(second)

	mockErr := errors.New("mock error")
	first.EXPECT().Print().Return(mockErr)
	second.EXPECT().Print().Times(0)
	assert.ErrorIs(t, p.Print(), mockErr)
}

func TestPrinters_CloseClosesAll(t *testing.T) {
	ctrl := gomock.NewController(t)

	first := NewMockPrinter(ctrl)
	second := NewMockPrinter(ctrl)
	p := NewPrinters().AddPrinter(first).AddPrinter(second)

	mockErr := errors.New("mock error")
	first.EXPECT().Close().Return(mockErr)
	second.EXPECT().Close().Return(nil)
	assert.ErrorIs(t, p.Close(), mockErr)
}

func TestPrinters_AddPrinterToConsole(t *testing.T) {
	p := NewPrinters().AddPrinterToConsole(false, func() string { return "summary" })
	assert.Equal(t, 1, p.Len())

	p = NewPrinters().AddPrinterToConsole(true, func() string { return "summary" })
	assert.Equal(t, 0, p.Len())
}

func TestPrinters_AddPrinterToFile(t *testing.T) {
	f := func() string { return "0.1 0.2\n" }
	p := NewPrinters().AddPrinterToFile("test.txt", false, f)
	require.Equal(t, 1, p.Len())
	assert.False(t, p.printers[0].(*PrinterToFile).appendTo)

	p = NewPrinters().AddPrinterToFile("test.txt", true, f)
	require.Equal(t, 1, p.Len())
	assert.True(t, p.printers[0].(*PrinterToFile).appendTo)

	p = NewPrinters().AddPrinterToFile("", true, f)
	assert.Equal(t, 0, p.Len())
}

func TestPrinterToWriter_Print(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinterToWriter(&buf, func() string { return "Hello, World!" })
	require.NoError(t, p.Print())
	assert.Equal(t, "Hello, World!\n", buf.String())
	assert.NoError(t, p.Close())
}

func TestPrinterToWriter_NewPrinterToConsole(t *testing.T) {
	p := NewPrinterToConsole(func() string { return "Hello, World!" })
	assert.NotNil(t, p)
	assert.Equal(t, reflect.ValueOf(os.Stdout).Pointer(), reflect.ValueOf(p.w).Pointer())
	assert.NotNil(t, p.f)
}

func TestPrinterToFile_TruncatesOnFirstPrint(t *testing.T) {
	path := filepath.Join(t.TempDir(), "samples.txt")
	require.NoError(t, os.WriteFile(path, []byte("stale\n"), 0644))

	line := "0.1 0.2\n"
	p := NewPrinterToFile(path, func() string { return line })
	require.NoError(t, p.Print())
	line = "0.3 0.4\n"
	require.NoError(t, p.Print())
	require.NoError(t, p.Close())

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "0.1 0.2\n0.3 0.4\n", string(got))
}

func TestPrinterToFile_Appending(t *testing.T) {
	path := filepath.Join(t.TempDir(), "samples.txt")
	require.NoError(t, os.WriteFile(path, []byte("kept\n"), 0644))

	p := NewAppendingPrinterToFile(path, func() string { return "new\n" })
	require.NoError(t, p.Print())

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "kept\nnew\n", string(got))
}

func TestPrinterToFile_CompressesGzipFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "samples.txt.gz")
	line := "0.1 0.2\n"
	p := NewPrinterToFile(path, func() string { return line })
	require.NoError(t, p.Print())
	line = "0.3 0.4\n"
	require.NoError(t, p.Print())

	file, err := os.Open(path)
	require.NoError(t, err)
	defer func(file *os.File) {
		_ = file.Close()
	}(file)
	reader, err := gzip.NewReader(file)
	require.NoError(t, err)
	got, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "0.1 0.2\n0.3 0.4\n", string(got))
}

func TestPrinterToFile_InvalidPath(t *testing.T) {
	p := NewPrinterToFile(filepath.Join(t.TempDir(), "missing", "samples.txt"), func() string { return "" })
	assert.Error(t, p.Print())
}

func TestPrinterToDb_Print(t *testing.T) {
	db, mockDb, err := sqlmock.New()
	require.NoError(t, err)
	defer func(db *sql.DB) {
		_ = db.Close()
	}(db)

	// case success
	p := &PrinterToDb{
		db:     db,
		insert: "INSERT INTO samples",
		f: func() [][]any {
			return [][]any{{int64(1), 0.5}}
		},
	}
	mockDb.ExpectBegin()
	prep := mockDb.ExpectPrepare("INSERT INTO samples")
	prep.ExpectExec().WithArgs(int64(1), 0.5).WillReturnResult(sqlmock.NewResult(1, 1))
	prep.WillBeClosed()
	mockDb.ExpectCommit()
	assert.NoError(t, p.Print())

	// case Begin error
	mockErr := errors.New("mock error")
	mockDb.ExpectBegin().WillReturnError(mockErr)
	assert.ErrorIs(t, p.Print(), mockErr)

	// case Prepare error
	mockDb.ExpectBegin()
	mockDb.ExpectPrepare("INSERT INTO samples").WillReturnError(mockErr)
	mockDb.ExpectRollback()
	assert.ErrorIs(t, p.Print(), mockErr)

	// case Exec error
	mockDb.ExpectBegin()
	prep = mockDb.ExpectPrepare("INSERT INTO samples")
	prep.ExpectExec().WillReturnError(mockErr)
	mockDb.ExpectRollback()
	assert.ErrorIs(t, p.Print(), mockErr)

	// case Commit error
	mockDb.ExpectBegin()
	prep = mockDb.ExpectPrepare("INSERT INTO samples")
	prep.ExpectExec().WillReturnResult(sqlmock.NewResult(1, 1))
	mockDb.ExpectCommit().WillReturnError(mockErr)
	assert.ErrorIs(t, p.Print(), mockErr)

	assert.NoError(t, mockDb.ExpectationsWereMet())
}

func TestPrinterToDb_Close(t *testing.T) {
	db, mockDb, err := sqlmock.New()
	require.NoError(t, err)

	p := &PrinterToDb{db: db}
	mockDb.ExpectClose()
	assert.NoError(t, p.Close())
	assert.NoError(t, mockDb.ExpectationsWereMet())
}

func TestPrinterToDb_NewPrinterToSqlite3(t *testing.T) {
	conn := filepath.Join(t.TempDir(), "samples.db")
	p, err := NewPrinterToSqlite3(conn, "CREATE TABLE IF NOT EXISTS t (x REAL)", "", nil)
	require.NoError(t, err)
	assert.NotNil(t, p)
	require.NoError(t, p.Close())

	p, err = NewPrinterToSqlite3(conn, "asfd;asdf", "", nil)
	assert.Error(t, err)
	assert.Nil(t, p)
}

func TestPrinterToDb_Bufferize(t *testing.T) {
	p := &PrinterToDb{}
	buf, f := p.Bufferize(10)
	assert.Equal(t, 10, buf.capacity)
	assert.Equal(t, 0, buf.Length())
	assert.Same(t, buf, f.bf)
	assert.Same(t, p, f.og)
}

func TestPrinterToBuffer_FlushesAtCapacity(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockFlusher := NewMockIFlusher(ctrl)
	p := &PrinterToBuffer{
		capacity: 2,
		f: func() [][]any {
			return [][]any{{0.1, 0.2}}
		},
		buffer:  make([][]any, 0, 2),
		flusher: mockFlusher,
	}
	require.NoError(t, p.Print())
	assert.Equal(t, 1, p.Length())

	mockFlusher.EXPECT().Print().Return(nil).Times(1)
	require.NoError(t, p.Print())
	assert.Equal(t, 2, p.Length())

	p.Reset()
	assert.Equal(t, 0, p.Length())
	assert.NoError(t, p.Close())
}

func TestFlusher_WritesBufferedRowsToSqlite3(t *testing.T) {
	conn := filepath.Join(t.TempDir(), "samples.db")
	row := 0
	p, err := NewPrinterToSqlite3(conn, "CREATE TABLE t (i INTEGER)", "INSERT INTO t VALUES (?)", func() [][]any {
		return [][]any{{row}}
	})
	require.NoError(t, err)

	buf, flusher := p.Bufferize(3)
	for row = range 7 {
		require.NoError(t, buf.Print())
	}
	assert.Equal(t, 1, buf.Length())
	require.NoError(t, flusher.Close())

	db, err := sql.Open("sqlite3", conn)
	require.NoError(t, err)
	defer func(db *sql.DB) {
		_ = db.Close()
	}(db)
	var count, sum int
	require.NoError(t, db.QueryRow("SELECT COUNT(*), SUM(i) FROM t").Scan(&count, &sum))
	assert.Equal(t, 7, count)
	assert.Equal(t, 21, sum)
}

func TestFlusher_CloseWithEmptyBuffer(t *testing.T) {
	db, mockDb, err := sqlmock.New()
	require.NoError(t, err)

	f := &Flusher{
		og: &PrinterToDb{db: db},
		bf: &PrinterToBuffer{flusher: &Flusher{}},
	}
	mockDb.ExpectClose()
	assert.NoError(t, f.Close())
	assert.NoError(t, mockDb.ExpectationsWereMet())
}
