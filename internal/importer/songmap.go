package importer

import (
	"fmt"

	"github.com/retroenv/nesmusicimport/internal/buffer"
	"github.com/retroenv/nesmusicimport/internal/identity"
	"github.com/retroenv/nesmusicimport/internal/importedmodule"
	"github.com/retroenv/nesmusicimport/internal/musicdata"
	"github.com/retroenv/nesmusicimport/internal/rom"
)

const emptySongByte = 0xFF
const emptyModAddr = 0

// writePrimarySongMap writes the (bank_byte, song_byte) primary table and
// its parallel module-address table. original is the pristine ROM snapshot,
// required only when songMap assigns a builtin song to some slot; pass nil
// when no builtin song is in play.
//
// Grounded on spec.md §4.6; the module-address table is assembled through a
// buffer.Buffer the same way the teacher's writer.go accumulates a block
// before a single flush.
func (imp *Importer) writePrimarySongMap(
	songMap map[int]*musicdata.Song,
	infos map[identity.ID]importedmodule.Info,
	original []byte,
) error {
	addrTable := buffer.New(make([]byte, 2*imp.config.NumSongs))

	for slot := 0; slot < imp.config.NumSongs; slot++ {
		song := songMap[slot]

		var bankByte, songByte byte
		var modAddr uint16

		switch {
		case song == nil:
			bankByte, songByte = 0, emptySongByte
			modAddr = emptyModAddr

		case song.Module == nil:
			b, s, err := readOriginalEntry(original, imp.config.SongMapOffset, slot)
			if err != nil {
				return err
			}
			bankByte, songByte = b, s
			modAddr = emptyModAddr

		default:
			info, ok := infos[song.Module.ID()]
			if !ok {
				return fmt.Errorf("no imported module info for module %q (slot %d)", song.Module.Title, slot)
			}
			bankByte, songByte = info.GetSongMapEntry(slot)
			modAddr = info.Address()
		}

		offset := imp.config.SongMapOffset + 2*slot
		if err := imp.rom.WriteByte(offset, bankByte, fmt.Sprintf("primary song map[%d] bank byte", slot)); err != nil {
			return fmt.Errorf("writing primary song map bank byte at slot %d: %w", slot, err)
		}
		if err := imp.rom.WriteByte(offset+1, songByte, fmt.Sprintf("primary song map[%d] song byte", slot)); err != nil {
			return fmt.Errorf("writing primary song map song byte at slot %d: %w", slot, err)
		}

		if err := addrTable.WriteU16LE(modAddr); err != nil {
			return fmt.Errorf("building module address table at slot %d: %w", slot, err)
		}
	}

	if err := imp.rom.WriteBlock(imp.config.SongModAddrTblOffset, addrTable.Bytes(), "module address table"); err != nil {
		return fmt.Errorf("writing module address table: %w", err)
	}
	return nil
}

func readOriginalEntry(original []byte, songMapOffset, slot int) (bankByte, songByte byte, err error) {
	if original == nil {
		return 0, 0, fmt.Errorf("%w: builtin song at slot %d requires ROM readback", rom.ErrUnsupported, slot)
	}
	offset := songMapOffset + 2*slot
	if offset+1 >= len(original) {
		return 0, 0, fmt.Errorf("builtin song at slot %d: primary song map offset out of range", slot)
	}
	return original[offset], original[offset+1], nil
}

// writeSecondaryMap writes one named secondary table: for every slot within
// info.Length, the referenced song's primary slot (from songIndices) or
// info.EmptyIndex when the slot is empty or the song isn't indexed.
//
// Grounded on spec.md §4.7.
func (imp *Importer) writeSecondaryMap(
	info SongMapInfo,
	assignments map[int]*musicdata.Song,
	songIndices map[identity.ID]int,
) error {
	for slot := 0; slot < info.Length; slot++ {
		value := info.EmptyIndex

		if song := assignments[slot]; song != nil {
			if primarySlot, ok := songIndices[song.ID()]; ok {
				value = byte(primarySlot) //nolint:gosec // primary slots fit a byte by construction
			}
		}

		comment := fmt.Sprintf("%s map[%d]", info.Name, slot)
		if err := imp.rom.WriteByte(info.Offset+slot, value, comment); err != nil {
			return fmt.Errorf("writing secondary map %q at slot %d: %w", info.Name, slot, err)
		}
	}
	return nil
}
