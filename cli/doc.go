// (c) Siemens AG 2025
//
// SPDX-License-Identifier: MIT

/*
Package cli defines plugin extension points for the caplog command. This
allows to build extended capture session CLI tools that leverage the existing
base implementation, for instance, adding further capture backends or
site-specific commands.

# Extension Points

The following plugin “group” extension points are available (and also invoked in
this general order):

  - [SetupCLI]: for adding (sub) commands and CLI args to the (in [cobra]
    parlance) “root” command.
  - [CommandExamples]: for adding (more) examples to particular commands.
    These plugin functions are invoked after all [SetupCLI] plugins have been
    called, so that all commands have been registered by the time the examples
    should be extended with even more examples.
  - [BeforeCommand]: for checking and doing things just before the command
    runs, such as binding the configuration.
  - [NewBackend]: for creating a suitable capture backend, depending on the
    effective settings; the local sniffer backend registers itself as the
    fallback at the end of this group.

Simply put, the plugin mechanism used in caplog is compile-time only and allows
so-called plugins to register functions (and interface implementations) in what
is termed “groups”. The registered functions/interfaces then can be iterated
over. Additionally, the plugin mechanism allows control over the ordering of
plugins: for instance, this allows a remote capture backend to place itself
before the local fallback backend. For more details about the plugin
mechanism, please refer to [go-plugger].

[cobra]: https://github.com/spf13/cobra
[go-plugger]: https://github.com/thediveo/go-plugger
*/
package cli
