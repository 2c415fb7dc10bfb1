// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package tts synthesizes question prompts to audio files.

The OpenAI implementation posts to the /audio/speech endpoint and writes
the returned MP3 into the audio directory the file host serves. Synthesis
is a fire-and-forget side effect of the voting service: handlers run it
on a goroutine, a failure is logged and the tally state machine is never
touched. Disabled is the drop-everything stand-in when no API key is set.
*/
package tts
