/*
Package mapper turns a command tree built for one execution domain into an isomorphic tree for another.

A Mapper is created from the origin dispatcher and a converter from foreign sources to origin sources.
Each call to Map or MapNode runs one pass:

  - literals keep their names, requirements are wrapped through the converter;
  - argument types are translated by Translate;
  - argument suggestions are resolved to a shared foreign provider, a reparse adapter or nothing;
  - redirects are linked to the mapped target, deferred until the end of the pass when the target
    has not been mapped yet.

Any error aborts the pass and nothing is returned.
*/
package mapper
