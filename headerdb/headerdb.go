// Copyright (c) 2024 The Doriancoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package headerdb provides a leveldb-backed header store for the block
// chain.  Headers are keyed by their big-endian main chain height, so
// iterating the keyspace yields them in chain order.
package headerdb

import (
	"bytes"
	"encoding/binary"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/doriansuite/doriand/blockchain"
	"github.com/doriansuite/doriand/wire"
)

// headerKeyPrefix is the key prefix for serialized block headers.
var headerKeyPrefix = []byte("hdr")

// headerKey returns the database key for the header at the given height.
func headerKey(height int32) []byte {
	key := make([]byte, len(headerKeyPrefix)+4)
	copy(key, headerKeyPrefix)
	binary.BigEndian.PutUint32(key[len(headerKeyPrefix):], uint32(height))
	return key
}

// DB is a header store backed by leveldb.  It implements
// blockchain.HeaderStore.
type DB struct {
	ldb *leveldb.DB
}

// Compile time check to ensure DB satisfies the blockchain.HeaderStore
// interface.
var _ blockchain.HeaderStore = (*DB)(nil)

// Open opens (creating if necessary) the header database at the given path.
func Open(dbPath string) (*DB, error) {
	ldb, err := leveldb.OpenFile(dbPath, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open header db %q", dbPath)
	}
	return &DB{ldb: ldb}, nil
}

// OpenMem opens a header database backed entirely by memory.  It is intended
// for testing.
func OpenMem() (*DB, error) {
	ldb, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open in-memory header db")
	}
	return &DB{ldb: ldb}, nil
}

// Close closes the underlying database.
func (db *DB) Close() error {
	return errors.Wrap(db.ldb.Close(), "failed to close header db")
}

// PutHeader stores the header for the given main chain height, replacing any
// header previously stored at that height.
//
// This is part of the blockchain.HeaderStore interface.
func (db *DB) PutHeader(height int32, header *wire.BlockHeader) error {
	serialized, err := header.Bytes()
	if err != nil {
		return errors.Wrapf(err, "failed to serialize header at height %d",
			height)
	}
	err = db.ldb.Put(headerKey(height), serialized, nil)
	return errors.Wrapf(err, "failed to store header at height %d", height)
}

// Truncate removes all stored headers above the given height.
//
// This is part of the blockchain.HeaderStore interface.
func (db *DB) Truncate(height int32) error {
	keyRange := util.BytesPrefix(headerKeyPrefix)
	keyRange.Start = headerKey(height + 1)

	batch := new(leveldb.Batch)
	iter := db.ldb.NewIterator(keyRange, nil)
	for iter.Next() {
		batch.Delete(iter.Key())
	}
	iter.Release()
	if err := iter.Error(); err != nil {
		return errors.Wrapf(err, "failed to scan headers above height %d",
			height)
	}

	err := db.ldb.Write(batch, nil)
	return errors.Wrapf(err, "failed to truncate headers above height %d",
		height)
}

// Headers invokes the given function for each stored header in ascending
// height order.
//
// This is part of the blockchain.HeaderStore interface.
func (db *DB) Headers(fn func(height int32, header *wire.BlockHeader) error) error {
	iter := db.ldb.NewIterator(util.BytesPrefix(headerKeyPrefix), nil)
	defer iter.Release()

	for iter.Next() {
		key := iter.Key()
		height := int32(binary.BigEndian.Uint32(key[len(headerKeyPrefix):]))

		var header wire.BlockHeader
		err := header.Deserialize(bytes.NewReader(iter.Value()))
		if err != nil {
			return errors.Wrapf(err, "corrupt header at height %d",
				height)
		}

		if err := fn(height, &header); err != nil {
			return err
		}
	}
	return errors.Wrap(iter.Error(), "failed to iterate headers")
}
