/*
Package window owns every desktop panel: windows and mini-apps.

The Manager is the only component allowed to mutate panel state. Every
operation runs to completion under a single lock and then notifies
subscribers with a copy of the resulting state. Operations on unknown ids
are silent no-ops, and geometry constraint violations are clamped rather
than rejected.

Focus changes flow through one choke point that bumps the global z-index
counter, keeps exactly one panel focused, and maintains a de-duplicated
focus history used for alt-tab style switching.

Mini-apps share the z-index counter with windows but render in their own
band; see types.Panel.Layer.
*/
package window
