/*
Package builder assembles the build graph for one project.

The graph is built bottom-up so every node only ever references nodes that
already exist:

 1. Directory nodes: one CreateDirectory node for target/ and one for
    target/obj/. Both handles are kept and shared.

 2. Compile nodes: one CompileToObject node per discovered source, each
    depending on exactly [target, obj].

 3. Link node: one LinkToBinary node depending on every compile node followed
    by [target, obj]. It links the compile nodes' objects into
    target/<package name> and becomes the graph root.

The builder never runs anything; it hands the finished graph to the executor.
*/
package builder
