// (c) Siemens AG 2025
//
// SPDX-License-Identifier: MIT

/*
Package websock enhances Gorilla client websockets with the graceful
closing procedure needed when streaming packet captures: both ends
exchange polite close control messages instead of one side simply
tearing down the transport connection and truncating the packet stream
mid-block.
*/
package websock
