// Command litescan inspects a SQLite database file directly at the
// on-disk format level: dot commands report header and schema info, and a
// narrow SELECT subset runs against the file's B-trees without any
// external SQLite library.
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/lindeneg/litescan/internal/dbfile"
	"github.com/lindeneg/litescan/internal/format"
	"github.com/lindeneg/litescan/internal/query"
	"github.com/lindeneg/litescan/internal/schema"
	"github.com/lindeneg/litescan/internal/sqlsurface"
)

func main() {
	if len(os.Args) != 3 {
		log.Fatal(errors.Wrap(dbfile.ErrUsage, "usage: litescan <database file> <command>").Error())
	}

	if err := run(os.Args[1], os.Args[2]); err != nil {
		log.Fatal(err.Error())
	}
}

func run(path, cmd string) error {
	db, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(dbfile.ErrIO, err.Error())
	}

	header, err := format.ParseDatabaseHeader(db)
	if err != nil {
		return err
	}

	sch, err := schema.Reflect(db)
	if err != nil {
		return err
	}

	switch cmd {
	case ".dbinfo":
		printDBInfo(header, sch)
		return nil
	case ".tables":
		printTables(sch)
		return nil
	case ".schema":
		printSchema(sch)
		return nil
	default:
		return runSelect(db, sch, cmd)
	}
}

func printDBInfo(header *format.DatabaseHeader, sch *schema.DBSchema) {
	fmt.Printf("database page size:  %v\n", header.EffectivePageSize())
	fmt.Printf("write format:        %v\n", header.WriteVersion)
	fmt.Printf("read format:         %v\n", header.ReadVersion)
	fmt.Printf("reserved bytes:      %v\n", header.ReservedBytes)
	fmt.Printf("text encoding:       %v\n", header.TextEncoding)
	fmt.Printf("number of tables:    %v\n", len(sch.UserTables()))
	fmt.Printf("number of indexes:   %v\n", len(sch.Indexes()))
	fmt.Printf("number of views:     %v\n", len(sch.Views()))
	fmt.Printf("number of triggers:  %v\n", len(sch.Triggers()))
	fmt.Printf("schema size:         %v\n", sch.Size)
}

func printTables(sch *schema.DBSchema) {
	names := make([]string, 0, len(sch.UserTables()))
	for _, t := range sch.UserTables() {
		names = append(names, t.Name)
	}
	fmt.Println(strings.Join(names, " "))
}

func printSchema(sch *schema.DBSchema) {
	for _, o := range sch.Objects {
		if o.HasSQL {
			fmt.Println(o.SQL)
		} else {
			fmt.Printf("-- %s %s (no sql recorded)\n", o.Type, o.Name)
		}
	}
}

func runSelect(db []byte, sch *schema.DBSchema, sql string) error {
	sel, err := sqlsurface.Parse(sql)
	if err != nil {
		return err
	}

	ex, err := query.NewExecutor(db, sch)
	if err != nil {
		return err
	}

	rows, err := ex.RunSelect(sel)
	if err != nil {
		return err
	}

	for _, row := range rows {
		fields := make([]string, len(row))
		for i, v := range row {
			fields[i] = v.Format()
		}
		fmt.Println(strings.Join(fields, "|"))
	}
	return nil
}
