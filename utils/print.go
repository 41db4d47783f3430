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
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	_ "github.com/mattn/go-sqlite3"
)

// Printer outputs generated samples or reports from the system
//
//go:generate mockgen -source print.go -destination print_mock.go -package utils
type Printer interface {
	Print() error
	Close() error
}

// Printers fans a single Print/Close out to every registered printer.
type Printers struct {
	printers []Printer
}

func (ps *Printers) Print() error {
	for _, p := range ps.printers {
		if err := p.Print(); err != nil {
			return err
		}
	}
	return nil
}

func (ps *Printers) Close() error {
	var errs []error
	for _, p := range ps.printers {
		errs = append(errs, p.Close())
	}
	return errors.Join(errs...)
}

func (ps *Printers) Len() int {
	return len(ps.printers)
}

func NewPrinters() *Printers {
	return &Printers{[]Printer{}}
}

func (ps *Printers) AddPrinter(p Printer) *Printers {
	ps.printers = append(ps.printers, p)
	return ps
}

// PrinterToWriter writes to any io.Writer
// Wrap f, returns a string to be printed
type PrinterToWriter struct {
	w io.Writer
	f func() string
}

func (p *PrinterToWriter) Print() error {
	_, err := fmt.Fprintln(p.w, p.f())
	return err
}

func (p *PrinterToWriter) Close() error {
	return nil
}

func NewPrinterToWriter(w io.Writer, f func() string) *PrinterToWriter {
	return &PrinterToWriter{w, f}
}

func NewPrinterToConsole(f func() string) *PrinterToWriter {
	return &PrinterToWriter{os.Stdout, f}
}

func (ps *Printers) AddPrinterToWriter(w io.Writer, f func() string) *Printers {
	return ps.AddPrinter(NewPrinterToWriter(w, f))
}

func (ps *Printers) AddPrinterToConsole(isDisabled bool, f func() string) *Printers {
	if isDisabled {
		return ps
	}
	return ps.AddPrinter(NewPrinterToConsole(f))
}

// PrinterToFile writes to a File
// Wrap f, returns a string to be printed. The first Print truncates the
// file unless the printer appends. Files ending in .gz are gzip compressed,
// every Print adding one gzip member.
type PrinterToFile struct {
	filepath string
	appendTo bool
	f        func() string
}

func (p *PrinterToFile) Print() (err error) {
	flags := os.O_CREATE | os.O_WRONLY
	if p.appendTo {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	file, err := os.OpenFile(p.filepath, flags, 0644)
	if err != nil {
		return fmt.Errorf("unable to print to file %s; %w", p.filepath, err)
	}
	// later prints of the same run go to the end of the file
	p.appendTo = true

	defer func(file *os.File) {
		e := file.Close()
		if e != nil {
			err = errors.Join(err, e)
		}
	}(file)
	if !strings.HasSuffix(p.filepath, ".gz") {
		_, err = file.WriteString(p.f())
		return err
	}
	gzipWriter := gzip.NewWriter(file)
	_, err = io.WriteString(gzipWriter, p.f())
	return errors.Join(err, gzipWriter.Close())
}

func (p *PrinterToFile) Close() error {
	return nil
}

// NewPrinterToFile returns a printer that replaces the file content.
func NewPrinterToFile(filepath string, f func() string) *PrinterToFile {
	return &PrinterToFile{filepath, false, f}
}

// NewAppendingPrinterToFile returns a printer that keeps existing content.
func NewAppendingPrinterToFile(filepath string, f func() string) *PrinterToFile {
	return &PrinterToFile{filepath, true, f}
}

// AddPrinterToFile adds a file printer unless filepath is empty. With
// appendTo the existing file content is kept.
func (ps *Printers) AddPrinterToFile(filepath string, appendTo bool, f func() string) *Printers {
	switch {
	case filepath == "":
		return ps
	case appendTo:
		return ps.AddPrinter(NewAppendingPrinterToFile(filepath, f))
	default:
		return ps.AddPrinter(NewPrinterToFile(filepath, f))
	}
}

// PrinterToDb writes by inserting rows into DB
// Wrap f, returns an array of values to be inserted
type PrinterToDb struct {
	db     *sql.DB
	insert string
	f      func() [][]any
}

func (p *PrinterToDb) Print() (err error) {
	// Transaction is used to improve efficiency over bulk insert
	tx, err := p.db.Begin()
	if err != nil {
		return fmt.Errorf("unable to begin a transaction; %w", err)
	}

	stmt, err := tx.Prepare(p.insert)
	if err != nil {
		return errors.Join(fmt.Errorf("unable to prepare statement %s; %w", p.insert, err), tx.Rollback())
	}
	// Stmt to be open/close each time a transaction happens
	defer func(stmt *sql.Stmt) {
		e := stmt.Close()
		if e != nil {
			err = errors.Join(err, e)
		}
	}(stmt)

	for _, value := range p.f() {
		_, err = stmt.Exec(value...)
		if err != nil {
			return errors.Join(err, tx.Rollback())
		}
	}
	return tx.Commit()
}

func (p *PrinterToDb) Close() error {
	return p.db.Close()
}

// NewPrinterToSqlite3 opens the sqlite3 database conn and executes create
// before any rows are inserted.
func NewPrinterToSqlite3(conn string, create string, insert string, f func() [][]any) (*PrinterToDb, error) {
	db, err := sql.Open("sqlite3", conn)
	if err != nil {
		return nil, fmt.Errorf("failed to open connection to sqlite3 %s; %w", conn, err)
	}

	_, err = db.Exec(create)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("failed to create table on %s; %w", conn, err), db.Close())
	}

	// so that insert does not block
	_, err = db.Exec("PRAGMA synchronous = OFF")
	if err != nil {
		return nil, errors.Join(err, db.Close())
	}
	// no intermediate write to file
	_, err = db.Exec("PRAGMA journal_mode = MEMORY")
	if err != nil {
		return nil, errors.Join(err, db.Close())
	}

	return &PrinterToDb{db, insert, f}, nil
}

// Bufferize split PrintToDB into 2 printers: 1. print to buffer 2. flush buffer to DB
func (p *PrinterToDb) Bufferize(capacity int) (*PrinterToBuffer, *Flusher) {
	pb := &PrinterToBuffer{capacity, p.f, make([][]any, 0, capacity), nil}
	flusher := &Flusher{p, pb}
	pb.flusher = flusher
	return pb, flusher
}

// PrinterToBuffer collects rows until capacity is reached and hands them
// to its flusher.
type PrinterToBuffer struct {
	capacity int
	f        func() [][]any
	buffer   [][]any
	flusher  IFlusher
}

func (p *PrinterToBuffer) Print() error {
	p.buffer = append(p.buffer, p.f()...)
	if len(p.buffer) >= p.capacity {
		return p.flusher.Print()
	}

	return nil
}

func (p *PrinterToBuffer) Close() error {
	return nil
}

func (p *PrinterToBuffer) Reset() {
	p.buffer = p.buffer[:0]
}

func (p *PrinterToBuffer) Length() int {
	return len(p.buffer)
}

type IFlusher interface {
	Print() error
	Close() error
}

// Flusher writes the buffered rows through the original db printer.
type Flusher struct {
	og *PrinterToDb     // needs to know how the original printer prints
	bf *PrinterToBuffer // needs to access the buffer
}

func (p *Flusher) Print() error {
	p.og.f = func() [][]any { return p.bf.buffer }

	defer p.bf.Reset() // clear buffer here
	return p.og.Print()
}

// Close flushes the remaining rows and closes the database.
func (p *Flusher) Close() error {
	var err error
	if p.bf.Length() > 0 {
		err = p.Print()
	}
	return errors.Join(err, p.og.Close(), p.bf.Close())
}
