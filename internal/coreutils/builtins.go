// SPDX-License-Identifier: MPL-2.0

package coreutils

import "time"

// RegisterBuiltins adds every built-in command, with its aliases, to r.
func RegisterBuiltins(r *Registry) {
	// Filesystem.
	r.Register(newLsCommand())
	r.Register(newCdCommand())
	r.Register(newPwdCommand())
	r.Register(newCatCommand())
	r.Register(newTouchCommand())
	r.Register(newMkdirCommand())
	r.Register(newRmdirCommand())
	r.Register(newRmCommand())
	r.Register(newCpCommand())
	r.Register(newMvCommand())
	r.Register(newLnCommand())
	r.Register(newChmodCommand())
	r.Register(newOwnerCommand("chown", "Change file owner", "OWNER"))
	r.Register(newOwnerCommand("chgrp", "Change group ownership", "GROUP"))
	r.Register(newFindCommand())
	r.Register(newLocateCommand())
	r.Register(newDuCommand())
	r.Register(newDfCommand())
	r.Register(newFileCommand())
	r.Register(newStringsCommand())
	r.Register(newTarCommand())
	r.Register(newCompressCommand("gzip", gzipCodec, false))
	r.Register(newCompressCommand("gunzip", gzipCodec, true))
	r.Register(newCompressCommand("zstd", zstdCodec, false))
	r.Register(newCompressCommand("unzstd", zstdCodec, true))
	r.Register(newSha256Command(), "shasum")
	r.Register(newB3sumCommand())

	// Text processing.
	r.Register(newHeadCommand())
	r.Register(newTailCommand())
	r.Register(newWcCommand())
	r.Register(newGrepCommand(), "egrep", "fgrep")
	r.Register(newSortCommand())
	r.Register(newUniqCommand())
	r.Register(newCutCommand())
	r.Register(newDiffCommand())
	r.Register(newCmpCommand())
	r.Register(newTrCommand())
	r.Register(newFoldCommand())
	r.Register(newCksumCommand())
	r.Register(newTeeCommand())
	r.Register(newLessCommand(), "more")
	r.Register(newPasteCommand())
	r.Register(newJoinCommand())
	r.Register(newAwkCommand())
	r.Register(newSedCommand())
	r.Register(newIconvCommand())
	r.Register(newExCommand())

	// System and identity.
	r.Register(newEchoCommand())
	r.Register(newUnameCommand())
	for _, c := range identityCommands() {
		r.Register(c)
	}
	r.Register(newHistoryCommand())
	r.Register(newStubCommand("passwd", "Change user password"))
	r.Register(newStubCommand("su", "Switch user"))
	r.Register(newStubCommand("sudo", "Run a command as another user"))

	// Processes.
	r.Register(newPsCommand())
	r.Register(newTopCommand())
	r.Register(newKillCommand())
	r.Register(newKillByNameCommand("killall", "Kill processes by name", "name"))
	r.Register(newKillByNameCommand("pkill", "Kill processes by pattern", "pattern"))
	r.Register(newPidLookupCommand("pgrep", "List PIDs matching a pattern", "pattern", "\n"))
	r.Register(newPidLookupCommand("pidof", "Find the process ID of a program", "name", " "))
	r.Register(newLsofCommand())
	r.Register(newSleepCommand())
	r.Register(newWrapperCommand("time", "Time a command", timeReport))
	r.Register(newWrapperCommand("nice", "Run a command with modified priority",
		func(_ *HandlerContext, _ time.Time, res Result) Result { return res }))
	r.Register(newNohupCommand())

	// Help.
	r.Register(newHelpCommand())
	r.Register(newManCommand())
	r.Register(newWhatisCommand())
	r.Register(newWhereisCommand())
	r.Register(newWhichCommand())
	r.Register(newTypeCommand())

	// Utilities.
	r.Register(newBannerCommand())
	r.Register(newCalCommand())
	r.Register(newYesCommand())
	r.Register(newSeqCommand())
	r.Register(newDirnameCommand())
	r.Register(newBasenameCommand())
	r.Register(newClearCommand())
	r.Register(newExitCommand())
	r.Register(newStatusCommand("true", true))
	r.Register(newStatusCommand("false", false))
	r.Register(newDownloadCommand())
}
