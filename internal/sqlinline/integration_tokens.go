package sqlinline

// Integration tokens hold one shared secret per payment gateway, keyed as
// "gateway:<payment_method>".

const QSelectIntegrationToken = `--sql ae476e23-f0b4-4319-858f-3f53b9113b2f
select token
from integration_tokens
where provider = lower($1::text)
limit 1;
`

const QUpsertIntegrationToken = `--sql e0ba0175-a045-42ec-a036-51457280bb7c
insert into integration_tokens (id, provider, token, properties, created_at, updated_at)
values (gen_random_uuid(), lower($1::text), $2::text, coalesce($3::jsonb, '{}'::jsonb), now(), now())
on conflict (provider) do update set
    token = excluded.token,
    properties = integration_tokens.properties || excluded.properties,
    updated_at = now();
`
