// Package ingest turns uploaded CSV files into stored records.
//
// Each entity is described once by a Descriptor: the table it lands in, its
// columns, the datanorm transform that builds typed rows and a projection
// back to column values. ProcessCSV runs parse, transform and upsert for any
// entity through that one pipeline.
//
// Rows are upserted one at a time in input order. There is no batch
// transaction: when row N fails, rows before it stay written.
package ingest
